package services

import (
	"context"
	"errors"
	"sort"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"zakatbackend/clients/http_client"
	kafka_client "zakatbackend/clients/kafka"
	rabbitmq_client "zakatbackend/clients/rabbitmq"
	"zakatbackend/types"
	"zakatbackend/utils/constants"
	"zakatbackend/utils/helpers"
)

// Input validation failures; surfaced to the user before any upstream call.
var (
	ErrMissingAsOfDate = errors.New("an as-of date is required")
	ErrNoTickers       = errors.New("enter at least one ticker to analyze")
)

type ValuationServiceI interface {
	Analyze(ctx context.Context, request types.ValuationRequest) (*types.ValuationResult, error)
}

type valuationService struct{}

var ValuationService ValuationServiceI = &valuationService{}

// Analyze runs one valuation round trip: validate the input, serve the
// response from cache when possible, otherwise fetch it from the valuation
// service, then derive the zakat report from the response plus freshly built
// ledgers. The response is never mutated; every derived value lives in the
// report.
func (vs *valuationService) Analyze(ctx context.Context, request types.ValuationRequest) (*types.ValuationResult, error) {
	span := sentry.StartSpan(ctx, "[SVC] Analyze")
	defer span.Finish()

	if request.AsOfDate == "" {
		return nil, ErrMissingAsOfDate
	}
	tickers := requestTickers(request)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	requestID := helpers.RequestID(request.AsOfDate, tickers)

	response := CacheLookup(ctx, requestID)
	cacheHit := response != nil
	if !cacheHit {
		fetchCtx, cancel := context.WithTimeout(ctx, constants.ValuationTimeout)
		defer cancel()

		fetched, err := http_client.FetchValuation(fetchCtx, request)
		if err != nil {
			sentry.CaptureException(err)
			zap.L().Error("Valuation fetch failed", zap.String("requestId", requestID), zap.Error(err))
			return nil, err
		}
		response = fetched
		CacheStore(ctx, requestID, response)
	} else {
		// The cached copy still carries the share counts of the request that
		// stored it; the fingerprint ignores them on purpose. Replace the echo
		// with this request's values before anything reads the response.
		reEchoShares(response, request.Portfolio)
		zap.L().Info("Valuation served from cache", zap.String("requestId", requestID))
	}

	companyLedger := BuildCompanyLedger(request.Portfolio)
	fundLedger := BuildFundLedger(request.Funds)
	report := BuildZakatReport(response, companyLedger, fundLedger)

	event := types.ZakatbackendEvent{
		RequestID:      requestID,
		AsOfDate:       request.AsOfDate,
		PortfolioCount: len(response.Portfolio),
		FundCount:      len(response.Funds),
		CacheHit:       cacheHit,
		GeneratedAt:    response.GeneratedAt,
	}
	kafka_client.SendMessage(event)
	rabbitmq_client.SendMessage(event)

	return &types.ValuationResult{
		Response: response,
		Report:   report,
		CacheHit: cacheHit,
	}, nil
}

// reEchoShares overwrites the per-company shares echo with the current
// request's values, summing duplicate tickers the way the ledger does.
// Tickers absent from this request lose their stale echo entirely.
func reEchoShares(response *types.ValuationResponse, portfolio []types.CompanyInput) {
	shares := make(Ledger)
	for _, row := range portfolio {
		addToLedger(shares, row.Ticker, row.Shares)
	}
	for i := range response.Portfolio {
		response.Portfolio[i].Shares = shares.Amount(response.Portfolio[i].Ticker)
	}
}

// requestTickers collects the normalized, deduplicated tickers of both input
// sets, sorted for a stable request fingerprint.
func requestTickers(request types.ValuationRequest) []string {
	seen := make(map[string]struct{})
	for _, company := range request.Portfolio {
		if key := helpers.NormalizeTicker(company.Ticker); key != "" {
			seen[key] = struct{}{}
		}
	}
	for _, fund := range request.Funds {
		if key := helpers.NormalizeTicker(fund.Ticker); key != "" {
			seen[key] = struct{}{}
		}
	}
	tickers := make([]string, 0, len(seen))
	for key := range seen {
		tickers = append(tickers, key)
	}
	sort.Strings(tickers)
	return tickers
}
