package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report backend liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler liveness and readiness endpoints
type HealthHandler struct {
	mongo Pinger // nil when not configured
	redis Pinger // nil when not configured
}

// NewHealthHandler creates the health handler
func NewHealthHandler(mongo, redis Pinger) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis}
}

// Health liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready readiness probe; checks the configured backends
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if h.mongo != nil {
		if err := h.mongo.Ping(ctx); err != nil {
			checks["mongo"] = err.Error()
			ready = false
		} else {
			checks["mongo"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			ready = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
