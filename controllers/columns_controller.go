package controllers

import (
	"github.com/gin-gonic/gin"

	"zakatbackend/services"
	"zakatbackend/utils/constants"
)

type ColumnsControllerI interface {
	GetColumns(ctx *gin.Context)
}

type columnsController struct{}

var ColumnsController ColumnsControllerI = &columnsController{}

// GetColumns describes both tables' columns (ids, labels, tooltips, default
// state) so the UI renders headers and settings from the same definitions the
// exporter uses. The extrapolation caption rides along because the fund
// figures it qualifies appear in every report.
func (cc *columnsController) GetColumns(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"portfolio":          services.NewCompanyTable().Meta(),
		"holdings":           services.NewHoldingTable().Meta(),
		"extrapolation_note": constants.ExtrapolationNote,
	})
}
