package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/autovolt/pkg/api/types"
)

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Connector reports broker connectivity
type Connector interface {
	IsConnected() bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db     Pinger
	broker Connector
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, broker Connector) *HealthHandler {
	return &HealthHandler{db: db, broker: broker}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns database and MQTT broker status. A missing broker only degrades config push, so it does not fail the check.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Database unreachable"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := types.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		MQTT:      "disconnected",
		Timestamp: time.Now(),
	}
	httpStatus := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		httpStatus = http.StatusServiceUnavailable
	}
	if h.broker.IsConnected() {
		resp.MQTT = "connected"
	} else if httpStatus == http.StatusOK {
		resp.Status = "degraded"
	}

	c.JSON(httpStatus, resp)
}
