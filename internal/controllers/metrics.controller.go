package controllers

import (
	"net/http"
	"strconv"

	"sulphur/internal/graph"
	"sulphur/internal/models"
	"sulphur/internal/services"

	"github.com/gin-gonic/gin"
)

// MetricsController serves snapshots of the monitor's history.
type MetricsController struct {
	source services.SnapshotSource
}

func NewMetricsController(source services.SnapshotSource) *MetricsController {
	return &MetricsController{source: source}
}

// GetMetrics returns the raw snapshot: every metric newest first, exactly
// capacity samples long.
func (mc *MetricsController) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, mc.source.Snapshot())
}

// GetGraph renders the snapshot on the server.
// Query params: type=cpu|net (default: cpu), color=true|false (default: false)
func (mc *MetricsController) GetGraph(c *gin.Context) {
	measurementType, err := models.ParseMeasurementType(c.DefaultQuery("type", "cpu"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	colored, err := strconv.ParseBool(c.DefaultQuery("color", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid color flag"})
		return
	}

	render := graph.Render
	if colored {
		render = graph.RenderColored
	}

	line, err := render(mc.source.Snapshot(), measurementType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, line)
}

func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
