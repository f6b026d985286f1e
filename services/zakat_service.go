package services

import (
	"zakatbackend/types"
	"zakatbackend/utils/constants"
	"zakatbackend/utils/helpers"
)

// ZakatableAmount is invested × ratio, defined only when both operands are
// present and finite. An unknown operand yields an unknown result, never 0.
func ZakatableAmount(invested, ratio *float64) *float64 {
	if !helpers.IsFinite(invested) || !helpers.IsFinite(ratio) {
		return nil
	}
	return helpers.Float64Ptr(*invested * *ratio)
}

// ZakatDue applies the fixed levy to a zakatable amount, with the same
// presence rule as ZakatableAmount.
func ZakatDue(zakatable *float64) *float64 {
	if !helpers.IsFinite(zakatable) {
		return nil
	}
	return helpers.Float64Ptr(*zakatable * constants.ZakatRate)
}

// BuildZakatReport joins an immutable valuation response with freshly built
// ledgers. Display and export both read from this one derivation, so the two
// paths can never diverge.
func BuildZakatReport(response *types.ValuationResponse, companies, funds Ledger) *types.ZakatReport {
	report := &types.ZakatReport{
		GeneratedAt: response.GeneratedAt,
		AsOfDate:    response.AsOfDate,
		Companies:   make([]types.CompanyZakatRow, 0, len(response.Portfolio)),
		Funds:       make([]types.FundZakatRow, 0, len(response.Funds)),
	}

	for _, company := range response.Portfolio {
		invested := companies.Amount(company.Ticker)
		zakatable := ZakatableAmount(invested, company.CRIToMarketPriceRatio)
		report.Companies = append(report.Companies, types.CompanyZakatRow{
			Ticker:          helpers.NormalizeTicker(company.Ticker),
			InvestedAmount:  invested,
			Ratio:           company.CRIToMarketPriceRatio,
			ZakatableAmount: zakatable,
			ZakatDue:        ZakatDue(zakatable),
		})
	}

	for _, fund := range response.Funds {
		invested := funds.Amount(fund.Ticker)
		extrapolated := ExtrapolatedRatio(fund.AggregateCRIToMarketPriceRatio, fund.TotalWeightCovered)
		zakatable := ZakatableAmount(invested, extrapolated)
		// An extrapolated ratio never travels without its caption.
		var note *string
		if extrapolated != nil {
			note = stringPtr(constants.ExtrapolationNote)
		}
		report.Funds = append(report.Funds, types.FundZakatRow{
			Ticker:             helpers.NormalizeTicker(fund.Ticker),
			InvestedAmount:     invested,
			AggregateRatio:     fund.AggregateCRIToMarketPriceRatio,
			TotalWeightCovered: fund.TotalWeightCovered,
			ExtrapolatedRatio:  extrapolated,
			Note:               note,
			ZakatableAmount:    zakatable,
			ZakatDue:           ZakatDue(zakatable),
		})
	}

	for _, row := range report.Companies {
		report.TotalZakatable = addKnown(report.TotalZakatable, row.ZakatableAmount)
		report.TotalDue = addKnown(report.TotalDue, row.ZakatDue)
	}
	for _, row := range report.Funds {
		report.TotalZakatable = addKnown(report.TotalZakatable, row.ZakatableAmount)
		report.TotalDue = addKnown(report.TotalDue, row.ZakatDue)
	}

	return report
}

// addKnown sums only known values; the total stays unknown until at least one
// component is known.
func addKnown(total, v *float64) *float64 {
	if !helpers.IsFinite(v) {
		return total
	}
	if total == nil {
		return helpers.Float64Ptr(*v)
	}
	return helpers.Float64Ptr(*total + *v)
}
