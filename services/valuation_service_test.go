package services

import (
	"reflect"
	"testing"

	"zakatbackend/types"
	"zakatbackend/utils/helpers"
)

func TestReEchoShares_ReplacesStaleEcho(t *testing.T) {
	response := &types.ValuationResponse{
		Portfolio: []types.CompanyValuation{
			{Ticker: "AAPL", Shares: helpers.Float64Ptr(10)},
			{Ticker: "MSFT", Shares: helpers.Float64Ptr(3)},
		},
	}
	reEchoShares(response, []types.CompanyInput{
		{Ticker: "aapl", Shares: helpers.Float64Ptr(5)},
	})

	if got := response.Portfolio[0].Shares; got == nil || *got != 5 {
		t.Errorf("Expected 5, got %v", got)
	}
	// No shares for MSFT in this request, so the stale echo is cleared.
	if got := response.Portfolio[1].Shares; got != nil {
		t.Errorf("Expected nil, got %v", *got)
	}
}

func TestReEchoShares_SumsDuplicateTickers(t *testing.T) {
	response := &types.ValuationResponse{
		Portfolio: []types.CompanyValuation{{Ticker: "AAPL"}},
	}
	reEchoShares(response, []types.CompanyInput{
		{Ticker: "AAPL", Shares: helpers.Float64Ptr(2)},
		{Ticker: "aapl", Shares: helpers.Float64Ptr(3)},
	})

	if got := response.Portfolio[0].Shares; got == nil || *got != 5 {
		t.Errorf("Expected 5, got %v", got)
	}
}

func TestRequestTickers_DedupedAndSorted(t *testing.T) {
	request := types.ValuationRequest{
		Portfolio: []types.CompanyInput{{Ticker: "msft"}, {Ticker: "AAPL"}, {Ticker: "MSFT"}},
		Funds:     []types.FundInput{{Ticker: "voo"}, {Ticker: ""}},
	}
	got := requestTickers(request)
	expected := []string{"AAPL", "MSFT", "VOO"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
