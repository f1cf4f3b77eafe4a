package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/service"
)

// DashboardHandler serves the coach-level overview.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	overview, err := h.dashboardService.Overview(c.Request.Context(), coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
