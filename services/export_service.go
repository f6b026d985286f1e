package services

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"zakatbackend/types"
	"zakatbackend/utils/constants"
	"zakatbackend/utils/helpers"
)

// CompanyRow joins one company valuation with the zakat figures derived from
// the direct-portfolio ledger. Column formatters read from this row, so the
// on-screen and exported values come from the same derivation.
type CompanyRow struct {
	Valuation types.CompanyValuation
	Zakat     types.CompanyZakatRow
}

// BuildCompanyRows derives one row per portfolio company from the immutable
// response plus the current ledger.
func BuildCompanyRows(response *types.ValuationResponse, ledger Ledger) []CompanyRow {
	rows := make([]CompanyRow, 0, len(response.Portfolio))
	for _, company := range response.Portfolio {
		invested := ledger.Amount(company.Ticker)
		zakatable := ZakatableAmount(invested, company.CRIToMarketPriceRatio)
		rows = append(rows, CompanyRow{
			Valuation: company,
			Zakat: types.CompanyZakatRow{
				Ticker:          helpers.NormalizeTicker(company.Ticker),
				InvestedAmount:  invested,
				Ratio:           company.CRIToMarketPriceRatio,
				ZakatableAmount: zakatable,
				ZakatDue:        ZakatDue(zakatable),
			},
		})
	}
	return rows
}

func textColumn[T any](id, label, tooltip string, width int, get func(T) *string) ColumnDef[T] {
	display := func(e T) string { return helpers.FormatString(get(e)) }
	return ColumnDef[T]{
		ID: id, Label: label, Tooltip: tooltip, DefaultWidth: width,
		Display: display,
		Export:  func(e T) string { return helpers.ExportValue(display(e)) },
	}
}

func moneyColumn[T any](id, label, tooltip string, width int, get func(T) *float64) ColumnDef[T] {
	display := func(e T) string { return helpers.FormatMoney(get(e)) }
	return ColumnDef[T]{
		ID: id, Label: label, Tooltip: tooltip, DefaultWidth: width,
		Display: display,
		Export:  func(e T) string { return helpers.ExportValue(display(e)) },
	}
}

func numberColumn[T any](id, label, tooltip string, width, digits int, get func(T) *float64) ColumnDef[T] {
	display := func(e T) string { return helpers.FormatNumber(get(e), digits) }
	return ColumnDef[T]{
		ID: id, Label: label, Tooltip: tooltip, DefaultWidth: width,
		Display: display,
		Export:  func(e T) string { return helpers.ExportValue(display(e)) },
	}
}

func percentColumn[T any](id, label, tooltip string, width, digits int, get func(T) *float64) ColumnDef[T] {
	display := func(e T) string { return helpers.FormatPercent(get(e), digits) }
	return ColumnDef[T]{
		ID: id, Label: label, Tooltip: tooltip, DefaultWidth: width,
		Display: display,
		Export:  func(e T) string { return helpers.ExportValue(display(e)) },
	}
}

func stringPtr(s string) *string { return &s }

// CompanyColumns is the fixed definition set for the portfolio table.
// Ratios render as percentages with 2 fraction digits, per-share metrics with
// 4; those precisions are per-column policy, set here and nowhere else.
func CompanyColumns() []ColumnDef[CompanyRow] {
	return []ColumnDef[CompanyRow]{
		textColumn("ticker", "Ticker", "", 110, func(r CompanyRow) *string { return stringPtr(helpers.NormalizeTicker(r.Valuation.Ticker)) }),
		textColumn("company_name", "Company", "", 220, func(r CompanyRow) *string { return r.Valuation.CompanyName }),
		textColumn("currency", "Currency", "", 100, func(r CompanyRow) *string { return r.Valuation.Currency }),
		textColumn("data_date", "Data date", "Date of the latest balance-sheet figures used.", 120, func(r CompanyRow) *string { return r.Valuation.DataDate }),
		textColumn("price_date", "Price date", "Date of the market price used.", 120, func(r CompanyRow) *string { return r.Valuation.PriceDate }),
		moneyColumn("cash_and_equivalents", "Cash & equivalents", "", 150, func(r CompanyRow) *float64 { return r.Valuation.CashAndEquivalents }),
		moneyColumn("receivables", "Receivables", "", 140, func(r CompanyRow) *float64 { return r.Valuation.Receivables }),
		moneyColumn("inventories", "Inventories", "", 140, func(r CompanyRow) *float64 { return r.Valuation.Inventories }),
		moneyColumn("market_price", "Market price", "", 130, func(r CompanyRow) *float64 { return r.Valuation.MarketPrice }),
		numberColumn("shares_outstanding", "Shares outstanding", "", 160, 0, func(r CompanyRow) *float64 { return r.Valuation.SharesOutstanding }),
		numberColumn("cri_per_share", "CRI / share", "Cash + receivables + inventories per outstanding share.", 130, 4, func(r CompanyRow) *float64 { return r.Valuation.CRIPerShare }),
		percentColumn("cri_ratio", "CRI / price", "Fraction of the market price covered by liquid assets.", 120, 2, func(r CompanyRow) *float64 { return r.Valuation.CRIToMarketPriceRatio }),
		moneyColumn("invested_amount", "Invested", "Summed amount you entered for this ticker.", 130, func(r CompanyRow) *float64 { return r.Zakat.InvestedAmount }),
		moneyColumn("zakatable_amount", "Zakatable", "Invested amount attributable to liquid assets.", 130, func(r CompanyRow) *float64 { return r.Zakat.ZakatableAmount }),
		moneyColumn("zakat_due", "Zakat due", "Zakatable amount at the 2.5% rate.", 120, func(r CompanyRow) *float64 { return r.Zakat.ZakatDue }),
	}
}

// HoldingColumns is the fixed definition set for a fund's holdings table.
func HoldingColumns() []ColumnDef[types.FundHoldingValuation] {
	cols := []ColumnDef[types.FundHoldingValuation]{
		textColumn("ticker", "Ticker", "", 110, func(h types.FundHoldingValuation) *string { return h.Ticker }),
		textColumn("name", "Name", "", 240, func(h types.FundHoldingValuation) *string { return h.Name }),
		textColumn("isin", "ISIN", "", 130, func(h types.FundHoldingValuation) *string { return h.Isin }),
		textColumn("cusip", "CUSIP", "", 120, func(h types.FundHoldingValuation) *string { return h.Cusip }),
		percentColumn("weight", "Weight", "Reported share of the fund's assets.", 110, 2, func(h types.FundHoldingValuation) *float64 { return h.Weight }),
		numberColumn("cri_per_share", "CRI / share", "", 130, 4, func(h types.FundHoldingValuation) *float64 {
			if h.Company == nil {
				return nil
			}
			return h.Company.CRIPerShare
		}),
		percentColumn("cri_ratio", "CRI / price", "Fraction of the holding's market price covered by liquid assets.", 120, 2, func(h types.FundHoldingValuation) *float64 {
			if h.Company == nil {
				return nil
			}
			return h.Company.CRIToMarketPriceRatio
		}),
	}
	// The weight cell doubles as the place to explain a missing match.
	for i := range cols {
		if cols[i].ID == "weight" {
			cols[i].CellTooltip = func(h types.FundHoldingValuation) string {
				if h.Company == nil {
					return "Holding could not be matched to a financial-metrics entity."
				}
				return ""
			}
		}
	}
	return cols
}

// NewCompanyTable builds the portfolio table with default column state.
func NewCompanyTable() *Table[CompanyRow] {
	return NewTable(CompanyColumns(), func(r CompanyRow) []string { return r.Valuation.Warnings })
}

// NewHoldingTable builds a fund-holdings table with default column state.
func NewHoldingTable() *Table[types.FundHoldingValuation] {
	return NewTable(HoldingColumns(), func(h types.FundHoldingValuation) []string { return h.Warnings })
}

type ExportServiceI interface {
	PortfolioCSV(req types.ExportRequest) (string, string, error)
	FundCSV(req types.ExportRequest) (string, string, error)
	PortfolioXLSX(req types.ExportRequest) (string, []byte, error)
	FundXLSX(req types.ExportRequest) (string, []byte, error)
	Share(ctx context.Context, filename string, content []byte) (string, error)
}

type exportService struct{}

var ExportService ExportServiceI = &exportService{}

// PortfolioCSV renders the visible portfolio columns. Returns the derived
// filename and the CSV content.
func (es *exportService) PortfolioCSV(req types.ExportRequest) (string, string, error) {
	table, rows := portfolioTable(&req)
	content, err := table.CSV(rows)
	if err != nil {
		return "", "", err
	}
	return helpers.ExportFilename("portfolio", req.Response.GeneratedAt) + ".csv", content, nil
}

// FundCSV renders one fund's holdings table, sorted by weight descending.
func (es *exportService) FundCSV(req types.ExportRequest) (string, string, error) {
	table, holdings, err := fundTable(&req)
	if err != nil {
		return "", "", err
	}
	content, err := table.CSV(holdings)
	if err != nil {
		return "", "", err
	}
	prefix := "fund-" + helpers.NormalizeTicker(req.FundTicker)
	return helpers.ExportFilename(prefix, req.Response.GeneratedAt) + ".csv", content, nil
}

// PortfolioXLSX renders the same visible columns as PortfolioCSV into a
// workbook, with sheet column widths taken from the registry state.
func (es *exportService) PortfolioXLSX(req types.ExportRequest) (string, []byte, error) {
	table, rows := portfolioTable(&req)
	content, err := writeWorkbook(table, rows, "Portfolio")
	if err != nil {
		return "", nil, err
	}
	return helpers.ExportFilename("portfolio", req.Response.GeneratedAt) + ".xlsx", content, nil
}

// FundXLSX renders one fund's holdings table into a workbook.
func (es *exportService) FundXLSX(req types.ExportRequest) (string, []byte, error) {
	table, holdings, err := fundTable(&req)
	if err != nil {
		return "", nil, err
	}
	content, err := writeWorkbook(table, holdings, helpers.NormalizeTicker(req.FundTicker))
	if err != nil {
		return "", nil, err
	}
	prefix := "fund-" + helpers.NormalizeTicker(req.FundTicker)
	return helpers.ExportFilename(prefix, req.Response.GeneratedAt) + ".xlsx", content, nil
}

// Share uploads an export artifact and returns its secure URL.
func (es *exportService) Share(ctx context.Context, filename string, content []byte) (string, error) {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		sentry.CaptureException(err)
		return "", fmt.Errorf("error initializing Cloudinary: %w", err)
	}
	publicID := uuid.New().String() + "_" + filename
	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID: publicID,
		Folder:   "exports",
	})
	if err != nil {
		sentry.CaptureException(err)
		zap.L().Error("Error uploading export to Cloudinary", zap.String("filename", filename), zap.Error(err))
		return "", err
	}
	zap.L().Info("Export uploaded to Cloudinary", zap.String("filename", filename), zap.String("url", uploadResult.SecureURL))
	return uploadResult.SecureURL, nil
}

func portfolioTable(req *types.ExportRequest) (*Table[CompanyRow], []CompanyRow) {
	table := NewCompanyTable()
	table.ApplyOverrides(req.Columns)
	rows := BuildCompanyRows(&req.Response, BuildCompanyLedger(req.Portfolio))
	return table, rows
}

func fundTable(req *types.ExportRequest) (*Table[types.FundHoldingValuation], []types.FundHoldingValuation, error) {
	fund := FindFund(&req.Response, req.FundTicker)
	if fund == nil {
		return nil, nil, fmt.Errorf("fund %q not found in response", helpers.NormalizeTicker(req.FundTicker))
	}
	table := NewHoldingTable()
	table.ApplyOverrides(req.Columns)
	return table, SortedHoldings(fund), nil
}

func writeWorkbook[T any](table *Table[T], entities []T, sheet string) ([]byte, error) {
	if len(table.VisibleColumns()) == 0 {
		return nil, ErrNoVisibleColumns
	}
	if sheet == "" {
		sheet = "Export"
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, table.Header()); err != nil {
		return nil, err
	}
	for i, row := range table.ExportRows(entities) {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	// Column and cell tooltips become sheet comments so the workbook carries
	// the same explanations the UI shows.
	addComment := func(colIdx, rowIdx int, text string) error {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
		if err != nil {
			return err
		}
		return f.AddComment(sheet, excelize.Comment{
			Cell:      cell,
			Paragraph: []excelize.RichTextRun{{Text: text}},
		})
	}
	for colIdx, def := range table.VisibleColumns() {
		if def.Tooltip != "" {
			if err := addComment(colIdx, 1, def.Tooltip); err != nil {
				return nil, err
			}
		}
		if def.CellTooltip == nil {
			continue
		}
		for rowIdx, entity := range entities {
			if tip := def.CellTooltip(entity); tip != "" {
				if err := addComment(colIdx, rowIdx+2, tip); err != nil {
					return nil, err
				}
			}
		}
	}

	// Pixel widths from the registry map to Excel character widths.
	for i, def := range table.VisibleColumns() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width := float64(table.Config(def.ID).Width) / 7.0
		if width <= 0 {
			width = float64(constants.MinColumnWidth) / 7.0
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
