package controllers

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"zakatbackend/services"
	"zakatbackend/types"
)

type ValuationControllerI interface {
	Analyze(ctx *gin.Context)
}

type valuationController struct{}

var ValuationController ValuationControllerI = &valuationController{}

// Analyze validates the user's input, runs the valuation round trip and
// returns the response together with the derived zakat report. Failures never
// clear anything the UI already shows; they only carry a message.
func (v *valuationController) Analyze(ctx *gin.Context) {
	defer sentry.Recover()
	span := sentry.StartSpan(ctx.Request.Context(), "[GIN] Analyze", sentry.WithTransactionName("Analyze"))
	defer span.Finish()

	var request types.ValuationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		span.Status = sentry.SpanStatusFailedPrecondition
		ctx.JSON(400, gin.H{"error": "Error parsing request body"})
		return
	}

	result, err := services.ValuationService.Analyze(span.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingAsOfDate), errors.Is(err, services.ErrNoTickers):
			span.Status = sentry.SpanStatusFailedPrecondition
			ctx.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, context.DeadlineExceeded):
			span.Status = sentry.SpanStatusDeadlineExceeded
			ctx.JSON(504, gin.H{"error": "Valuation request timed out"})
		default:
			span.Status = sentry.SpanStatusInternalError
			sentry.CaptureException(err)
			ctx.JSON(502, gin.H{"error": err.Error()})
		}
		return
	}

	span.Status = sentry.SpanStatusOK
	ctx.JSON(200, result)
}
