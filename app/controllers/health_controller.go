package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/helmet-store/pkg/ctx"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
)

// Pinger is satisfied by both repositories.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether every storage pool answers.
type HealthController struct {
	pools map[string]Pinger
}

func NewHealthController(pools map[string]Pinger) *HealthController {
	return &HealthController{pools: pools}
}

// Check handles GET /healthz.
func (h *HealthController) Check(c *ctx.Context) {
	pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.pools))
	healthy := true
	for name, p := range h.pools {
		if err := p.Ping(pingCtx); err != nil {
			logger.WithCtx(c.Context()).Error("health check failed", "backend", name, "error", err)
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": http.StatusServiceUnavailable,
			"error":  http.StatusText(http.StatusServiceUnavailable),
			"checks": checks,
		})
		return
	}
	c.Success(map[string]any{"status": "ok", "checks": checks})
}
