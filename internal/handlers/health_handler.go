package handlers

import (
	"context"
	"net/http"
	"time"

	"skillswap/internal/logger"

	"github.com/gin-gonic/gin"
)

// Pinger - то, что умеет *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "unknown"})
		return
	}

	if err := h.db.PingContext(ctx); err != nil {
		logger.CtxWithError(ctx, "Health check: database ping failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
