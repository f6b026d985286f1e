package controllers

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"zakatbackend/services"
	"zakatbackend/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportControllerI interface {
	ExportPortfolio(ctx *gin.Context)
	ExportFund(ctx *gin.Context)
}

type exportController struct{}

var ExportController ExportControllerI = &exportController{}

// ExportPortfolio writes the visible columns of the portfolio table as a CSV
// attachment, or an XLSX workbook with ?format=xlsx. ?share=true uploads the
// artifact instead and returns its URL.
func (e *exportController) ExportPortfolio(ctx *gin.Context) {
	e.export(ctx, "ExportPortfolio", false)
}

// ExportFund does the same for one fund's holdings table; the request body
// names the fund ticker.
func (e *exportController) ExportFund(ctx *gin.Context) {
	e.export(ctx, "ExportFund", true)
}

func (e *exportController) export(ctx *gin.Context, name string, fund bool) {
	defer sentry.Recover()
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] "+name, sentry.WithTransactionName(name))
	defer span.Finish()

	var request types.ExportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		span.Status = sentry.SpanStatusFailedPrecondition
		ctx.JSON(400, gin.H{"error": "Error parsing request body"})
		return
	}
	if fund && request.FundTicker == "" {
		span.Status = sentry.SpanStatusFailedPrecondition
		ctx.JSON(400, gin.H{"error": "A fund ticker is required"})
		return
	}

	var (
		filename    string
		content     []byte
		contentType string
		err         error
	)
	if ctx.DefaultQuery("format", "csv") == "xlsx" {
		contentType = xlsxContentType
		if fund {
			filename, content, err = services.ExportService.FundXLSX(request)
		} else {
			filename, content, err = services.ExportService.PortfolioXLSX(request)
		}
	} else {
		contentType = "text/csv"
		var text string
		if fund {
			filename, text, err = services.ExportService.FundCSV(request)
		} else {
			filename, text, err = services.ExportService.PortfolioCSV(request)
		}
		content = []byte(text)
	}

	if err != nil {
		if errors.Is(err, services.ErrNoVisibleColumns) {
			span.Status = sentry.SpanStatusFailedPrecondition
			ctx.JSON(400, gin.H{"error": "No columns selected for export"})
			return
		}
		span.Status = sentry.SpanStatusInternalError
		sentry.CaptureException(err)
		ctx.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if ctx.Query("share") == "true" {
		url, err := services.ExportService.Share(span.Context(), filename, content)
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
			ctx.JSON(502, gin.H{"error": "Error uploading export"})
			return
		}
		span.Status = sentry.SpanStatusOK
		ctx.JSON(200, gin.H{"filename": filename, "url": url})
		return
	}

	span.Status = sentry.SpanStatusOK
	ctx.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	ctx.Data(200, contentType, content)
}
