package routes

import (
	"zakatbackend/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	v1 := r.Group("/api")

	{
		v1.GET("/keepServerRunning", controllers.HealthController.IsRunning)
		v1.GET("/health", controllers.HealthController.UpstreamHealth)
		v1.POST("/valuation", controllers.ValuationController.Analyze)
		v1.GET("/guide", controllers.GuideController.GetGuide)
		v1.GET("/columns", controllers.ColumnsController.GetColumns)
		v1.POST("/exportPortfolio", controllers.ExportController.ExportPortfolio)
		v1.POST("/exportFund", controllers.ExportController.ExportFund)
		v1.POST("/maintenance/clearCache", controllers.MaintenanceController.ClearCache)
	}
}
