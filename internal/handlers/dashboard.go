package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type DashboardHandler struct {
	log              *logger.Logger
	dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:              log.With("handler", "DashboardHandler"),
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoRoleAssigned) {
			RespondError(c, http.StatusForbidden, "no_role_assigned", err)
			return
		}
		h.log.Error("GetDashboard failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_dashboard_failed", err)
		return
	}
	RespondOK(c, gin.H{"dashboard": dashboard})
}
