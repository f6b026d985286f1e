package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"zakatbackend/clients/http_client"
	"zakatbackend/utils/constants"
)

type HealthControllerI interface {
	IsRunning(ctx *gin.Context)
	UpstreamHealth(ctx *gin.Context)
}

type healthController struct{}

var HealthController HealthControllerI = &healthController{}

func (h *healthController) IsRunning(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "Server is running"})
}

// UpstreamHealth probes the valuation service on demand. Connectivity check
// only; the valuation pipeline never depends on it. A hung upstream must not
// hold the handler, so the probe carries its own deadline.
func (h *healthController) UpstreamHealth(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), constants.HealthTimeout)
	defer cancel()

	message, err := http_client.UpstreamHealth(probeCtx)
	if err != nil {
		ctx.JSON(502, gin.H{"error": "Valuation service is unreachable"})
		return
	}
	ctx.JSON(200, gin.H{"message": message})
}
