// internal/handlers/dashboard_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storedash/backend/internal/models"
	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

type DashboardHandler struct {
	analyticsService *services.AnalyticsService
}

func NewDashboardHandler(analyticsService *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := h.analyticsService.GetDashboardStats(c.Request.Context(), principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	analytics, err := h.analyticsService.GetAnalytics(principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, analytics)
}

// GetCategories lists the fixed category labels for form dropdowns.
func (h *DashboardHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, models.Categories())
}
