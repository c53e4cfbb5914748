package routes

import (
	"net/http"

	"sulphur/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterStreamRoutes registers the websocket snapshot stream.
func RegisterStreamRoutes(r *gin.Engine, sc *controllers.StreamController) {
	r.GET("/ws", sc.HandleWebSocket)
}

// RegisterExporterRoutes mounts a Prometheus handler.
func RegisterExporterRoutes(r *gin.Engine, handler http.Handler) {
	r.GET("/prometheus", gin.WrapH(handler))
}
