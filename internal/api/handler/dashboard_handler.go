package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/route2rise/leaddesk/internal/api/metrics"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

// DashboardHandler serves the aggregate statistics snapshot.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /leads/dashboard/stats.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        assigned_to  query     string  false  "Scope the snapshot to one owner"
// @Success      200          {object}  dashboardStatsResponse
// @Failure      401          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /leads/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.DashboardSnapshotDuration)
	defer timer.ObserveDuration()

	stats, err := h.service.ComputeStats(c.Request().Context(), c.QueryParam("assigned_to"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
