package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/database"
)

// SystemHandler handles health and informational endpoints
type SystemHandler struct {
	dbManager *database.Manager
	logger    coreport.Logger
	version   string
}

// NewSystemHandler creates a new system handler instance
func NewSystemHandler(dbManager *database.Manager, logger coreport.Logger, version string) *SystemHandler {
	return &SystemHandler{
		dbManager: dbManager,
		logger:    logger,
		version:   version,
	}
}

// Health handles the GET /health endpoint
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.dbManager.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
	})
}

// About handles the GET /about endpoint
func (h *SystemHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "finbharat",
		"description": "Paper trading with live market prices",
		"version":     h.version,
	})
}
