package dto

import (
	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
)

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResponse is the response body for successful login. The CSRF token
// must accompany every mutating admin request in the X-CSRF-Token header.
type LoginResponse struct {
	Token     string `json:"token"`
	CSRFToken string `json:"csrf_token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// RefundRequest is the request body for a manual refund. A missing amount
// means a full refund.
type RefundRequest struct {
	Amount *string `json:"amount,omitempty"` // decimal string, e.g. "49.90"
	Reason string  `json:"reason" binding:"required,min=1,max=500"`
}

// CancelRequest is the request body for a manual cancellation.
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ForceStatusRequest is the request body for an operator status override.
type ForceStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// UpdateOrderStatusRequest forces a payment status on an order's latest
// transaction.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ToggleGatewayRequest flips a gateway's active flag.
type ToggleGatewayRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// GatewaySettingsRequest is the request body for saving gateway settings.
type GatewaySettingsRequest struct {
	DisplayName string `json:"display_name" binding:"max=100"`
	Active      bool   `json:"active"`
	Sandbox     bool   `json:"sandbox"`
}

// TransactionResponse is one transaction in list and detail views.
type TransactionResponse struct {
	ID                    string             `json:"id"`
	OrderID               int64              `json:"order_id"`
	Gateway               string             `json:"gateway"`
	ExternalTransactionID string             `json:"external_transaction_id"`
	PaymentMethod         string             `json:"payment_method,omitempty"`
	Amount                string             `json:"amount"`
	Currency              string             `json:"currency"`
	Status                string             `json:"status"`
	Badge                 domain.StatusBadge `json:"badge"`
	CreatedAt             string             `json:"created_at"`
	UpdatedAt             string             `json:"updated_at"`
}

// HistoryEntryResponse is one entry of a transaction's status log.
type HistoryEntryResponse struct {
	Status    string            `json:"status"`
	Note      string            `json:"note,omitempty"`
	Actor     string            `json:"actor,omitempty"`
	Snapshot  map[string]string `json:"snapshot,omitempty"`
	CreatedAt string            `json:"created_at"`
}

// RefundResponse is one refund issued against a transaction.
type RefundResponse struct {
	ID        string `json:"id"`
	RefundID  string `json:"refund_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

// OrderResponse is the order projection shown alongside a transaction.
type OrderResponse struct {
	ID            int64  `json:"id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// TransactionDetailResponse aggregates the admin transaction view.
type TransactionDetailResponse struct {
	Transaction TransactionResponse    `json:"transaction"`
	History     []HistoryEntryResponse `json:"history"`
	Refunds     []RefundResponse       `json:"refunds"`
	Order       *OrderResponse         `json:"order,omitempty"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// WebhookResponse is one webhook delivery in the admin log.
type WebhookResponse struct {
	ID            string  `json:"id"`
	Gateway       string  `json:"gateway"`
	EventType     string  `json:"event_type"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Success       bool    `json:"success"`
	ProcessResult string  `json:"process_result"`
	CreatedAt     string  `json:"created_at"`
}

// WebhookDetailResponse adds the recorded (redacted) payload and, when the
// delivery resolved to a known payment, the transaction it belongs to.
type WebhookDetailResponse struct {
	WebhookResponse
	RequestData string               `json:"request_data"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// FromWebhookDetail maps the admin webhook detail view.
func FromWebhookDetail(d *ports.WebhookDetail) WebhookDetailResponse {
	resp := WebhookDetailResponse{
		WebhookResponse: FromWebhook(d.Webhook),
		RequestData:     d.Webhook.RequestData,
	}
	if d.Transaction != nil {
		txn := FromTransaction(d.Transaction)
		resp.Transaction = &txn
	}
	return resp
}

// WebhookListResponse wraps a paginated webhook log.
type WebhookListResponse struct {
	Items      []WebhookResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ReconcileResponse reports the outcome of a status-changing action.
type ReconcileResponse struct {
	Applied        bool   `json:"applied"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	TransactionID  string `json:"transaction_id"`
}

// AttemptResponse is one payment attempt in the admin order view.
type AttemptResponse struct {
	ID            int64   `json:"id"`
	OrderID       int64   `json:"order_id"`
	PaymentMethod string  `json:"payment_method"`
	Gateway       string  `json:"gateway"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Status        string  `json:"status"`
	Amount        string  `json:"amount"`
	Success       bool    `json:"success"`
	CreatedAt     string  `json:"created_at"`
}

// StatsResponse is the admin dashboard figures.
type StatsResponse struct {
	TotalTransactions int64  `json:"total_transactions"`
	Approved          int64  `json:"approved"`
	Pending           int64  `json:"pending"`
	Failed            int64  `json:"failed"`
	Refunded          int64  `json:"refunded"`
	TotalApproved     string `json:"total_approved"`
	TotalRefunded     string `json:"total_refunded"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// FromTransaction maps a domain transaction to its response shape.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                    t.ID.String(),
		OrderID:               t.OrderID,
		Gateway:               t.GatewayName,
		ExternalTransactionID: t.ExternalTransactionID,
		PaymentMethod:         t.PaymentMethod,
		Amount:                t.Amount.StringFixed(2),
		Currency:              t.Currency,
		Status:                string(t.Status),
		Badge:                 domain.BadgeFor(t.Status),
		CreatedAt:             t.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:             t.UpdatedAt.UTC().Format(timeLayout),
	}
}

// FromTransactionDetail maps the aggregated admin view.
func FromTransactionDetail(d *ports.TransactionDetail) TransactionDetailResponse {
	resp := TransactionDetailResponse{
		Transaction: FromTransaction(d.Transaction),
		History:     make([]HistoryEntryResponse, 0, len(d.History)),
		Refunds:     make([]RefundResponse, 0, len(d.Refunds)),
	}
	for _, h := range d.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:    string(h.Status),
			Note:      h.Note,
			Actor:     h.Actor,
			Snapshot:  h.Snapshot,
			CreatedAt: h.CreatedAt.UTC().Format(timeLayout),
		})
	}
	for _, r := range d.Refunds {
		resp.Refunds = append(resp.Refunds, FromRefund(&r))
	}
	if d.Order != nil {
		resp.Order = &OrderResponse{
			ID:            d.Order.ID,
			OrderNumber:   d.Order.OrderNumber,
			Status:        string(d.Order.Status),
			PaymentStatus: string(d.Order.PaymentStatus),
		}
	}
	return resp
}

// FromRefund maps a domain refund to its response shape.
func FromRefund(r *domain.Refund) RefundResponse {
	return RefundResponse{
		ID:        r.ID.String(),
		RefundID:  r.RefundID,
		Amount:    r.Amount.StringFixed(2),
		Status:    string(r.Status),
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt.UTC().Format(timeLayout),
	}
}

// FromWebhook maps a webhook record to its list shape.
func FromWebhook(w *domain.Webhook) WebhookResponse {
	return WebhookResponse{
		ID:            w.ID.String(),
		Gateway:       w.Gateway,
		EventType:     w.EventType,
		TransactionID: w.TransactionID,
		Success:       w.Success,
		ProcessResult: w.ProcessResult,
		CreatedAt:     w.CreatedAt.UTC().Format(timeLayout),
	}
}

// FromAttempt maps a payment attempt to its response shape.
func FromAttempt(a *domain.PaymentAttempt) AttemptResponse {
	return AttemptResponse{
		ID:            a.ID,
		OrderID:       a.OrderID,
		PaymentMethod: a.PaymentMethod,
		Gateway:       a.Gateway,
		TransactionID: a.TransactionID,
		Status:        string(a.Status),
		Amount:        a.Amount.StringFixed(2),
		Success:       a.Success,
		CreatedAt:     a.CreatedAt.UTC().Format(timeLayout),
	}
}

// FromReconcileResult maps a reconcile outcome to its response shape.
func FromReconcileResult(r *ports.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		Applied:        r.Applied,
		PreviousStatus: string(r.PreviousStatus),
		NewStatus:      string(r.NewStatus),
		TransactionID:  r.TransactionID.String(),
	}
}

// TotalPages computes pagination metadata for list responses.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}
