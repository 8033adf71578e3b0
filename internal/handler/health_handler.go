package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docpilot/internal/config"
	"docpilot/pkg/logger"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	upstage *config.UpstageConfig
	deps    map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler. deps may be empty.
func NewHealthHandler(upstage *config.UpstageConfig, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{upstage: upstage, deps: deps}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status               string `json:"status" example:"ok"`
	UpstageAPIConfigured bool   `json:"upstageApiConfigured" example:"true"`
	APIKey               string `json:"apiKey" example:"up_DYMaQ..."`
	Timestamp            string `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// Health handles GET /api/health
// @Summary Relay health
// @Description Reports whether the vendor API key is configured. Only the key prefix is shown.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:               "ok",
		UpstageAPIConfigured: h.upstage.Configured(),
		APIKey:               h.upstage.MaskedKey(),
		Timestamp:            time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Each dependency is pinged; any failure
// reports 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(h.deps))}
	status := http.StatusOK
	for name, dep := range h.deps {
		if err := dep.Ping(c.Request.Context()); err != nil {
			logger.Warn(c.Request.Context(), "readiness check failed", "dependency", name, "error", err)
			resp.Checks[name] = "unreachable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	c.JSON(status, resp)
}
