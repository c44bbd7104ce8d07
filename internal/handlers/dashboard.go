package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns task, event and team counters for the caller's dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
