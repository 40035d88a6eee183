package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/response"
)

type StatsService interface {
	GetStats(ctx context.Context) (*entities.AdminStats, error)
}

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	statsUsecase StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(statsUsecase StatsService) *AdminHandler {
	return &AdminHandler{statsUsecase: statsUsecase}
}

// GetStats returns collection counts and revenue
// GET /admin-stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
