package handler

import (
	"fiilar/internal/adapter/http/dto"
	"fiilar/internal/adapter/http/middleware"
	"fiilar/internal/core/ports"
	"fiilar/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles host dashboard endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.reportingSvc.HostStats(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.HostStatsResponse{
		TotalBookings: stats.TotalBookings,
		Completed:     stats.Completed,
		Cancelled:     stats.Cancelled,
		Earnings:      stats.Earnings,
		AverageRating: stats.AverageRating,
	})
}
