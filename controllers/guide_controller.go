package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zakatbackend/clients/http_client"
	"zakatbackend/utils/constants"
)

type GuideControllerI interface {
	GetGuide(ctx *gin.Context)
}

type guideController struct{}

var GuideController GuideControllerI = &guideController{}

// GetGuide fetches the instructional text with a hard timeout. A failed or
// slow fetch yields the fixed fallback text, never a blocking error.
func (g *guideController) GetGuide(ctx *gin.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx.Request.Context(), constants.GuideTimeout)
	defer cancel()

	text, err := http_client.FetchGuide(fetchCtx)
	if err != nil {
		zap.L().Warn("Guide fetch failed, serving fallback", zap.Error(err))
		ctx.JSON(200, gin.H{"text": constants.GuideFallback, "fallback": true})
		return
	}
	ctx.JSON(200, gin.H{"text": text, "fallback": false})
}
