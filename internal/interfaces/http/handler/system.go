package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bewertung/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and readiness endpoints.
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes on the given group.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service health including database connectivity.
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: "ok",
	})
}
