package routes

import (
	"sulphur/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterMetricsRoutes(r *gin.Engine, mc *controllers.MetricsController) {
	r.GET("/health", controllers.GetHealth)
	r.GET("/metrics", mc.GetMetrics)

	metrics := r.Group("/metrics")
	{
		metrics.GET("/graph", mc.GetGraph)
	}
}
