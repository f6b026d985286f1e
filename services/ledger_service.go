package services

import (
	"sort"

	"zakatbackend/types"
	"zakatbackend/utils/helpers"
)

// Ledger maps a normalized ticker to the summed invested amount for that
// ticker. The direct-portfolio ledger and the fund ledger are always built
// separately and never merged.
type Ledger map[string]float64

// BuildCompanyLedger aggregates the user's direct positions. Duplicate
// tickers are summed under one case-insensitive key; rows without a usable
// amount are dropped silently, since a missing amount just means no zakat
// estimate can be derived for that ticker.
func BuildCompanyLedger(rows []types.CompanyInput) Ledger {
	ledger := make(Ledger)
	for _, row := range rows {
		addToLedger(ledger, row.Ticker, row.Amount)
	}
	return ledger
}

// BuildFundLedger aggregates the user's fund positions.
func BuildFundLedger(rows []types.FundInput) Ledger {
	ledger := make(Ledger)
	for _, row := range rows {
		addToLedger(ledger, row.Ticker, row.Amount)
	}
	return ledger
}

func addToLedger(ledger Ledger, ticker string, amount *float64) {
	key := helpers.NormalizeTicker(ticker)
	if key == "" || !helpers.IsFinite(amount) {
		return
	}
	ledger[key] += *amount
}

// Amount looks up the invested amount for a ticker, nil when the ledger has
// no usable entry for it.
func (l Ledger) Amount(ticker string) *float64 {
	if v, ok := l[helpers.NormalizeTicker(ticker)]; ok {
		return &v
	}
	return nil
}

// Tickers returns the ledger keys in sorted order.
func (l Ledger) Tickers() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
