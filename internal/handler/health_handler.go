package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	service  string
	checkers map[string]port.HealthChecker
}

// NewHealthHandler creates a new HealthHandler. Readiness pings every checker.
func NewHealthHandler(service string, checkers map[string]port.HealthChecker) *HealthHandler {
	return &HealthHandler{service: service, checkers: checkers}
}

// Liveness handles GET /healthz and GET /health
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": h.service})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	for name, checker := range h.checkers {
		if err := checker.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": name + " not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
