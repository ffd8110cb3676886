package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/dto"
)

// HealthHandler serves the load-balancer health check.
type HealthHandler struct{}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
