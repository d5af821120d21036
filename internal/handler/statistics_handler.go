package handler

import (
	"net/http"

	"solicitudes-api/internal/middleware"
	"solicitudes-api/internal/model"
	"solicitudes-api/internal/service"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviewRoles := middleware.RequireRole(model.RoleAdmin, model.RoleAprobador, model.RolePagador)
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("", reviewRoles, h.GetDashboard)
	}
}

// @Summary      Get Dashboard Statistics
// @Description  Per-status counters, per-department volume and the amount paid month-to-date
// @Tags         Statistics
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{} "Unauthorized"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     BearerAuth
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statisticsService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    stats,
	})
}
