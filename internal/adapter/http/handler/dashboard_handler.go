package handler

import (
	"taverna-payment-service/internal/adapter/http/dto"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the admin dashboard statistics endpoint.
type DashboardHandler struct {
	adminSvc ports.PaymentAdminService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(adminSvc ports.PaymentAdminService) *DashboardHandler {
	return &DashboardHandler{adminSvc: adminSvc}
}

// GetStats handles GET /api/v1/admin/dashboard/stats?period=today|7d|30d.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.adminSvc.GetDashboardStats(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		TotalTransactions: stats.TotalTransactions,
		Approved:          stats.Approved,
		Pending:           stats.Pending,
		Failed:            stats.Failed,
		Refunded:          stats.Refunded,
		TotalApproved:     stats.TotalApproved,
		TotalRefunded:     stats.TotalRefunded,
	})
}
