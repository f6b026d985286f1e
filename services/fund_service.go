package services

import (
	"math"
	"sort"

	"zakatbackend/types"
	"zakatbackend/utils/helpers"
)

// ExtrapolatedRatio rescales a fund's partial-coverage aggregate ratio to a
// full-portfolio estimate: aggregate / coverage, defined only when both are
// present and coverage is positive. The rescale assumes uncovered holdings
// share the covered holdings' average ratio, which is a modeling assumption
// rather than verified methodology; constants.ExtrapolationNote carries the
// caption shown wherever the result appears.
func ExtrapolatedRatio(aggregate, coverage *float64) *float64 {
	if !helpers.IsFinite(aggregate) || !helpers.IsFinite(coverage) || *coverage <= 0 {
		return nil
	}
	return helpers.Float64Ptr(*aggregate / *coverage)
}

// SortedHoldings returns a fund's holdings ordered by weight descending for
// presentation. Holdings with unknown weight sort last; the comparison treats
// unknown as negative infinity but the value is never displayed that way. The
// response is immutable, so sorting happens on a copy.
func SortedHoldings(fund *types.FundValuation) []types.FundHoldingValuation {
	holdings := make([]types.FundHoldingValuation, len(fund.Holdings))
	copy(holdings, fund.Holdings)
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdingWeight(holdings[i]) > holdingWeight(holdings[j])
	})
	return holdings
}

func holdingWeight(h types.FundHoldingValuation) float64 {
	if !helpers.IsFinite(h.Weight) {
		return math.Inf(-1)
	}
	return *h.Weight
}

// FindFund locates a fund in the response by case-insensitive ticker.
func FindFund(response *types.ValuationResponse, ticker string) *types.FundValuation {
	key := helpers.NormalizeTicker(ticker)
	for i := range response.Funds {
		if helpers.NormalizeTicker(response.Funds[i].Ticker) == key {
			return &response.Funds[i]
		}
	}
	return nil
}
