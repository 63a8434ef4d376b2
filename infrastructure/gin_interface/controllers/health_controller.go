package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController interface {
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type healthController struct {
	metricsHandler http.Handler
}

// NewHealthController serves liveness and, when metricsHandler is set, the metrics scrape endpoint.
func NewHealthController(metricsHandler http.Handler) HealthController {
	return &healthController{
		metricsHandler: metricsHandler,
	}
}

func (h *healthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *healthController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", h.Health)
	if h.metricsHandler != nil {
		g.GET("/metrics", gin.WrapH(h.metricsHandler))
	}
}
