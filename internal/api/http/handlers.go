package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/dispatch"
	"github.com/ayvor/assistant/core/internal/infrastructure/monitoring"
	"github.com/ayvor/assistant/core/internal/shared/types"
)

// StatusReporter is the registry surface the status endpoints read.
type StatusReporter interface {
	Statistics() types.RegistryStats
}

// Handlers holds the REST handler dependencies.
type Handlers struct {
	log        *zap.Logger
	dispatcher *dispatch.Dispatcher
	registry   StatusReporter
	metrics    *monitoring.Metrics
	startedAt  time.Time
}

// NewHandlers creates the REST handler set.
func NewHandlers(log *zap.Logger, d *dispatch.Dispatcher, reg StatusReporter, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		log:        log,
		dispatcher: d,
		registry:   reg,
		metrics:    metrics,
		startedAt:  time.Now(),
	}
}

// ExecuteAction runs one command envelope. Malformed JSON is the only input
// failure reported at transport level; everything past decoding answers 200
// with a payload-level status.
func (h *Handlers) ExecuteAction(c *gin.Context) {
	var env types.CommandEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, types.Err("Invalid request body: "+err.Error()))
		return
	}

	// Handlers run to completion even if the caller disconnects; actions
	// have side effects that must not stop halfway.
	start := time.Now()
	result := h.dispatcher.Dispatch(context.WithoutCancel(c.Request.Context()), &env)
	if h.metrics != nil {
		h.metrics.RecordAction(env.Action, result.Status, time.Since(start))
	}

	c.JSON(http.StatusOK, result)
}

// Describe reports the service identity and its action whitelist.
func (h *Handlers) Describe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "ayvor-bridge",
		"version": "1.0",
		"actions": dispatch.Actions(),
	})
}

// SystemStatus reports liveness and registry statistics.
func (h *Handlers) SystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "running",
		"uptimeSeconds": int64(time.Since(h.startedAt).Seconds()),
		"registry":      h.registry.Statistics(),
	})
}

// Health is the minimal liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
