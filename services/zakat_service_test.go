package services

import (
	"encoding/json"
	"strings"
	"testing"

	"zakatbackend/types"
	"zakatbackend/utils/constants"
	"zakatbackend/utils/helpers"
)

func TestZakatableAmount(t *testing.T) {
	got := ZakatableAmount(helpers.Float64Ptr(100000), helpers.Float64Ptr(0.01))
	if got == nil || *got != 1000 {
		t.Errorf("Expected 1000, got %v", got)
	}
}

func TestZakatableAmount_UnknownOperands(t *testing.T) {
	if got := ZakatableAmount(nil, helpers.Float64Ptr(0.01)); got != nil {
		t.Errorf("Expected nil, got %v", *got)
	}
	if got := ZakatableAmount(helpers.Float64Ptr(1000), nil); got != nil {
		t.Errorf("Expected nil, got %v", *got)
	}
}

func TestZakatDue(t *testing.T) {
	got := ZakatDue(helpers.Float64Ptr(1000))
	if got == nil || *got != 25 {
		t.Errorf("Expected 25, got %v", got)
	}
	if got := ZakatDue(nil); got != nil {
		t.Errorf("Expected nil, got %v", *got)
	}
}

func TestBuildZakatReport_CompanyScenario(t *testing.T) {
	response := &types.ValuationResponse{
		GeneratedAt: "2024-06-01T10:00:00Z",
		AsOfDate:    "2024-05-31",
		Portfolio: []types.CompanyValuation{{
			Ticker:                "AAPL",
			CashAndEquivalents:    helpers.Float64Ptr(100),
			Receivables:           helpers.Float64Ptr(50),
			Inventories:           helpers.Float64Ptr(25),
			SharesOutstanding:     helpers.Float64Ptr(1000),
			CRIPerShare:           helpers.Float64Ptr(0.175),
			CRIToMarketPriceRatio: helpers.Float64Ptr(0.01),
		}},
	}
	ledger := BuildCompanyLedger([]types.CompanyInput{{Ticker: "aapl", Amount: helpers.Float64Ptr(100000)}})

	report := BuildZakatReport(response, ledger, Ledger{})
	if len(report.Companies) != 1 {
		t.Fatalf("Expected 1 company row, got %v", len(report.Companies))
	}
	row := report.Companies[0]
	if row.ZakatableAmount == nil || *row.ZakatableAmount != 1000 {
		t.Errorf("Expected zakatable 1000, got %v", row.ZakatableAmount)
	}
	if row.ZakatDue == nil || *row.ZakatDue != 25 {
		t.Errorf("Expected due 25, got %v", row.ZakatDue)
	}
	if report.TotalZakatable == nil || *report.TotalZakatable != 1000 {
		t.Errorf("Expected total zakatable 1000, got %v", report.TotalZakatable)
	}
	if report.TotalDue == nil || *report.TotalDue != 25 {
		t.Errorf("Expected total due 25, got %v", report.TotalDue)
	}
}

func TestBuildZakatReport_FundScenario(t *testing.T) {
	response := &types.ValuationResponse{
		GeneratedAt: "2024-06-01T10:00:00Z",
		AsOfDate:    "2024-05-31",
		Funds: []types.FundValuation{{
			Ticker:                         "VOO",
			AggregateCRIToMarketPriceRatio: helpers.Float64Ptr(0.008),
			TotalWeightCovered:             helpers.Float64Ptr(0.8),
		}},
	}
	ledger := BuildFundLedger([]types.FundInput{{Ticker: "VOO", Amount: helpers.Float64Ptr(50000)}})

	report := BuildZakatReport(response, Ledger{}, ledger)
	if len(report.Funds) != 1 {
		t.Fatalf("Expected 1 fund row, got %v", len(report.Funds))
	}
	row := report.Funds[0]
	if row.ExtrapolatedRatio == nil || *row.ExtrapolatedRatio != 0.01 {
		t.Errorf("Expected extrapolated 0.01, got %v", row.ExtrapolatedRatio)
	}
	if row.ZakatableAmount == nil || *row.ZakatableAmount != 500 {
		t.Errorf("Expected zakatable 500, got %v", row.ZakatableAmount)
	}
	if row.ZakatDue == nil || *row.ZakatDue != 12.5 {
		t.Errorf("Expected due 12.5, got %v", row.ZakatDue)
	}
}

func TestBuildZakatReport_ExtrapolatedRatioCarriesNote(t *testing.T) {
	response := &types.ValuationResponse{
		Funds: []types.FundValuation{
			{
				Ticker:                         "VOO",
				AggregateCRIToMarketPriceRatio: helpers.Float64Ptr(0.008),
				TotalWeightCovered:             helpers.Float64Ptr(0.8),
			},
			{Ticker: "VTI"},
		},
	}
	report := BuildZakatReport(response, Ledger{}, Ledger{})

	if report.Funds[0].Note == nil || *report.Funds[0].Note != constants.ExtrapolationNote {
		t.Errorf("Expected extrapolation note on estimated row, got %v", report.Funds[0].Note)
	}
	// No estimate, no caption.
	if report.Funds[1].Note != nil {
		t.Errorf("Expected nil note without an estimate, got %v", *report.Funds[1].Note)
	}

	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(string(payload), constants.ExtrapolationNote) {
		t.Errorf("Expected serialized report to carry the note, got %s", payload)
	}
}

func TestBuildZakatReport_UnknownStaysUnknown(t *testing.T) {
	response := &types.ValuationResponse{
		Portfolio: []types.CompanyValuation{{Ticker: "AAPL"}},
	}
	report := BuildZakatReport(response, Ledger{}, Ledger{})
	row := report.Companies[0]
	if row.InvestedAmount != nil || row.ZakatableAmount != nil || row.ZakatDue != nil {
		t.Errorf("Expected all derived values nil, got %+v", row)
	}
	if report.TotalZakatable != nil || report.TotalDue != nil {
		t.Errorf("Expected nil totals, got %v %v", report.TotalZakatable, report.TotalDue)
	}
}
