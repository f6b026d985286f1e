package types

// CompanyInput is one directly held position entered by the user.
type CompanyInput struct {
	Ticker string   `json:"ticker"`
	Shares *float64 `json:"shares,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// FundInput is one fund/ETF position entered by the user.
type FundInput struct {
	Ticker string   `json:"ticker"`
	Amount *float64 `json:"amount,omitempty"`
}

// ValuationRequest is the body forwarded to the valuation service.
type ValuationRequest struct {
	AsOfDate  string         `json:"as_of_date"`
	Portfolio []CompanyInput `json:"portfolio"`
	Funds     []FundInput    `json:"funds"`
}

// CompanyValuation mirrors one company entry of the valuation service
// response. Every numeric field is optional: nil means the service could not
// determine the value, which is distinct from zero and must stay that way
// through the whole pipeline.
type CompanyValuation struct {
	Ticker                string   `json:"ticker"`
	CompanyName           *string  `json:"company_name,omitempty"`
	Currency              *string  `json:"currency,omitempty"`
	DataDate              *string  `json:"data_date,omitempty"`
	PriceDate             *string  `json:"price_date,omitempty"`
	CashAndEquivalents    *float64 `json:"cash_and_equivalents,omitempty"`
	Receivables           *float64 `json:"receivables,omitempty"`
	Inventories           *float64 `json:"inventories,omitempty"`
	MarketPrice           *float64 `json:"market_price,omitempty"`
	SharesOutstanding     *float64 `json:"shares_outstanding,omitempty"`
	CRIPerShare           *float64 `json:"cri_per_share,omitempty"`
	CRIToMarketPriceRatio *float64 `json:"cri_to_market_price_ratio,omitempty"`
	Shares                *float64 `json:"shares,omitempty"`
	Warnings              []string `json:"warnings"`
}

// FundHoldingValuation is one look-through holding of a fund. Company is set
// only when the holding could be matched to a financial-metrics entity.
type FundHoldingValuation struct {
	Ticker   *string           `json:"ticker,omitempty"`
	Name     *string           `json:"name,omitempty"`
	Isin     *string           `json:"isin,omitempty"`
	Cusip    *string           `json:"cusip,omitempty"`
	Weight   *float64          `json:"weight,omitempty"`
	Company  *CompanyValuation `json:"company,omitempty"`
	Warnings []string          `json:"warnings"`
}

// FundValuation mirrors one fund entry of the valuation service response.
type FundValuation struct {
	Ticker                         string                 `json:"ticker"`
	FundName                       *string                `json:"fund_name,omitempty"`
	Currency                       *string                `json:"currency,omitempty"`
	MarketPrice                    *float64               `json:"market_price,omitempty"`
	PriceDate                      *string                `json:"price_date,omitempty"`
	AggregateCRIPerShare           *float64               `json:"aggregate_cri_per_share,omitempty"`
	AggregateCRIToMarketPriceRatio *float64               `json:"aggregate_cri_to_market_price_ratio,omitempty"`
	TotalWeightCovered             *float64               `json:"total_weight_covered,omitempty"`
	Holdings                       []FundHoldingValuation `json:"holdings"`
	Warnings                       []string               `json:"warnings"`
}

// ValuationResponse is the sole unit of data consumed from the valuation
// service per request. It is treated as immutable once received.
type ValuationResponse struct {
	GeneratedAt string             `json:"generated_at"`
	AsOfDate    string             `json:"as_of_date"`
	Portfolio   []CompanyValuation `json:"portfolio"`
	Funds       []FundValuation    `json:"funds"`
}

// CompanyZakatRow is the derived zakat estimate for one directly held company.
type CompanyZakatRow struct {
	Ticker          string   `json:"ticker"`
	InvestedAmount  *float64 `json:"invested_amount,omitempty"`
	Ratio           *float64 `json:"ratio,omitempty"`
	ZakatableAmount *float64 `json:"zakatable_amount,omitempty"`
	ZakatDue        *float64 `json:"zakat_due,omitempty"`
}

// FundZakatRow is the derived zakat estimate for one fund position. The
// extrapolated ratio rescales the partial-coverage aggregate to a full-fund
// estimate; whenever it is present, Note carries the caption explaining the
// assumption so the caller shows it alongside the figure.
type FundZakatRow struct {
	Ticker             string   `json:"ticker"`
	InvestedAmount     *float64 `json:"invested_amount,omitempty"`
	AggregateRatio     *float64 `json:"aggregate_ratio,omitempty"`
	TotalWeightCovered *float64 `json:"total_weight_covered,omitempty"`
	ExtrapolatedRatio  *float64 `json:"extrapolated_ratio,omitempty"`
	Note               *string  `json:"note,omitempty"`
	ZakatableAmount    *float64 `json:"zakatable_amount,omitempty"`
	ZakatDue           *float64 `json:"zakat_due,omitempty"`
}

// ZakatReport joins the valuation response with the user's ledgers. It is
// recomputed on demand and never stored on the response entities.
type ZakatReport struct {
	GeneratedAt    string            `json:"generated_at"`
	AsOfDate       string            `json:"as_of_date"`
	Companies      []CompanyZakatRow `json:"companies"`
	Funds          []FundZakatRow    `json:"funds"`
	TotalZakatable *float64          `json:"total_zakatable,omitempty"`
	TotalDue       *float64          `json:"total_due,omitempty"`
}

// ValuationResult is the payload returned to the UI for one analysis.
type ValuationResult struct {
	Response *ValuationResponse `json:"response"`
	Report   *ZakatReport       `json:"report"`
	CacheHit bool               `json:"cache_hit"`
}

// ColumnState is the session-scoped override for one column. Nil fields keep
// the column's default.
type ColumnState struct {
	Visible *bool `json:"visible,omitempty"`
	Width   *int  `json:"width,omitempty"`
}

// ExportRequest carries everything needed to rebuild a table for export: the
// response the UI already holds, the position rows the ledgers derive from,
// and per-column overrides. FundTicker selects the fund for holdings exports.
type ExportRequest struct {
	Response   ValuationResponse      `json:"response"`
	FundTicker string                 `json:"fund_ticker,omitempty"`
	Portfolio  []CompanyInput         `json:"portfolio,omitempty"`
	Funds      []FundInput            `json:"funds,omitempty"`
	Columns    map[string]ColumnState `json:"columns,omitempty"`
}

// ZakatbackendEvent is published to the configured broker after each
// successful analysis.
type ZakatbackendEvent struct {
	RequestID      string `json:"request_id"`
	AsOfDate       string `json:"as_of_date"`
	PortfolioCount int    `json:"portfolio_count"`
	FundCount      int    `json:"fund_count"`
	CacheHit       bool   `json:"cache_hit"`
	GeneratedAt    string `json:"generated_at"`
}
