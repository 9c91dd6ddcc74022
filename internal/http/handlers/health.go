package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flashcards-backend/internal/services"
)

type HealthHandler struct {
	health services.HealthService
}

func NewHealthHandler(health services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.health.Check(c.Request.Context()))
}
