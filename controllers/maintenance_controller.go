package controllers

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zakatbackend/services"
)

type MaintenanceControllerI interface {
	ClearCache(ctx *gin.Context)
}

type maintenanceController struct{}

var MaintenanceController MaintenanceControllerI = &maintenanceController{}

func (m *maintenanceController) ClearCache(ctx *gin.Context) {
	if err := services.ClearCache(ctx.Request.Context()); err != nil {
		sentry.CaptureException(err)
		zap.L().Error("Error clearing valuation cache", zap.Error(err))
		ctx.JSON(500, gin.H{"error": "Cache clearing failed"})
		return
	}
	ctx.JSON(200, gin.H{"status": "ok", "detail": "Service caches cleared."})
}
