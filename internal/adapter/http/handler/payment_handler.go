package handler

import (
	"strconv"

	"taverna-payment-service/internal/adapter/http/dto"
	"taverna-payment-service/internal/adapter/http/middleware"
	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"
	"taverna-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles the admin transaction endpoints: listing, detail,
// status checks, refunds, cancellations and status overrides.
type PaymentHandler struct {
	adminSvc ports.PaymentAdminService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(adminSvc ports.PaymentAdminService) *PaymentHandler {
	return &PaymentHandler{adminSvc: adminSvc}
}

// List handles GET /api/v1/admin/transactions.
func (h *PaymentHandler) List(c *gin.Context) {
	params := ports.TransactionListParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}
	if g := c.Query("gateway"); g != "" {
		params.Gateway = &g
	}
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		if !status.IsValid() {
			response.Error(c, apperror.Validation("unknown status filter"))
			return
		}
		params.Status = &status
	}
	if o := c.Query("order_id"); o != "" {
		orderID, err := strconv.ParseInt(o, 10, 64)
		if err != nil {
			response.Error(c, apperror.Validation("invalid order_id"))
			return
		}
		params.OrderID = &orderID
	}

	items, total, err := h.adminSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TransactionListResponse{
		Items:      make([]dto.TransactionResponse, 0, len(items)),
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: dto.TotalPages(total, params.PageSize),
	}
	for i := range items {
		resp.Items = append(resp.Items, dto.FromTransaction(&items[i]))
	}
	response.OK(c, resp)
}

// Get handles GET /api/v1/admin/transactions/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	detail, err := h.adminSvc.GetTransactionDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromTransactionDetail(detail))
}

// CheckStatus handles POST /api/v1/admin/transactions/:id/check.
func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	result, err := h.adminSvc.CheckTransactionStatus(c.Request.Context(), id, middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromReconcileResult(result))
}

// Refund handles POST /api/v1/admin/transactions/:id/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	in := ports.RefundInput{
		TransactionID: id,
		Reason:        req.Reason,
		Actor:         middleware.Username(c),
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			response.Error(c, apperror.ErrInvalidAmount())
			return
		}
		in.Amount = &amount
	}

	refund, err := h.adminSvc.Refund(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromRefund(refund))
}

// Cancel handles POST /api/v1/admin/transactions/:id/cancel.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.adminSvc.Cancel(c.Request.Context(), id, req.Reason, middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromReconcileResult(result))
}

// ForceStatus handles POST /api/v1/admin/transactions/:id/force-status.
func (h *PaymentHandler) ForceStatus(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	status := domain.TransactionStatus(req.Status)
	if !status.IsValid() {
		response.Error(c, apperror.Validation("unknown status"))
		return
	}

	result, err := h.adminSvc.ForceStatus(c.Request.Context(), ports.ForceStatusInput{
		TransactionID: id,
		Status:        status,
		Reason:        req.Reason,
		Actor:         middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromReconcileResult(result))
}

// CheckOrder handles POST /api/v1/admin/orders/:id/check.
func (h *PaymentHandler) CheckOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	result, err := h.adminSvc.CheckOrderTransactionStatus(c.Request.Context(), orderID, middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromReconcileResult(result))
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/payment-status.
func (h *PaymentHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	status := domain.TransactionStatus(req.Status)
	if !status.IsValid() {
		response.Error(c, apperror.Validation("unknown status"))
		return
	}

	if err := h.adminSvc.UpdateOrderPaymentStatus(c.Request.Context(), orderID, status, req.Reason, middleware.Username(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// GetAttempt handles GET /api/v1/admin/attempts/:id.
func (h *PaymentHandler) GetAttempt(c *gin.Context) {
	attemptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid attempt id"))
		return
	}

	attempt, err := h.adminSvc.GetAttemptData(c.Request.Context(), attemptID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromAttempt(attempt))
}

// --- param helpers ---

func transactionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return uuid.Nil, false
	}
	return id, true
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil || v < 1 {
		return def
	}
	return v
}
