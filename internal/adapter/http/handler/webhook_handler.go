package handler

import (
	"io"
	"net/http"

	"taverna-payment-service/internal/adapter/http/dto"
	"taverna-payment-service/internal/adapter/http/middleware"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"
	"taverna-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookHandler handles the public gateway callback endpoints and the admin
// webhook log.
type WebhookHandler struct {
	ingestSvc ports.WebhookIngestService
	adminSvc  ports.PaymentAdminService
	log       zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestSvc ports.WebhookIngestService, adminSvc ports.PaymentAdminService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{ingestSvc: ingestSvc, adminSvc: adminSvc, log: log}
}

// Receive handles POST /webhooks/:gateway. The provider is always answered
// 200 once the gateway is known: processing failures are recorded in the
// webhook log, and a non-2xx answer would only trigger pointless provider
// retries of a delivery we already stored.
func (h *WebhookHandler) Receive(c *gin.Context) {
	gateway := c.Param("gateway")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	result, err := h.ingestSvc.Ingest(c.Request.Context(), gateway, body, c.Request.Header)
	if err != nil {
		// Unknown gateway: nothing was recorded, tell the caller.
		if apperror.IsGatewayNotConfigured(err) {
			response.Error(c, err)
			return
		}
		h.log.Warn().Err(err).Str("gateway", gateway).Msg("webhook processing failed")
	}

	ack := gin.H{"status": "received"}
	if result != nil && result.Webhook != nil {
		ack["webhook_id"] = result.Webhook.ID.String()
	}
	c.JSON(http.StatusOK, ack)
}

// ReceivePayPalIPN handles POST /payment/ipn/paypal, the legacy IPN route
// PayPal was configured with before the path scheme changed.
func (h *WebhookHandler) ReceivePayPalIPN(c *gin.Context) {
	c.Params = append(c.Params, gin.Param{Key: "gateway", Value: "paypal"})
	h.Receive(c)
}

// List handles GET /api/v1/admin/webhooks.
func (h *WebhookHandler) List(c *gin.Context) {
	params := ports.WebhookListParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}
	if g := c.Query("gateway"); g != "" {
		params.Gateway = &g
	}
	if s := c.Query("success"); s != "" {
		v := s == "true"
		params.Success = &v
	}
	if tid := c.Query("transaction_id"); tid != "" {
		params.TransactionID = &tid
	}

	items, total, err := h.adminSvc.ListWebhooks(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.WebhookListResponse{
		Items:      make([]dto.WebhookResponse, 0, len(items)),
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: dto.TotalPages(total, params.PageSize),
	}
	for i := range items {
		resp.Items = append(resp.Items, dto.FromWebhook(&items[i]))
	}
	response.OK(c, resp)
}

// Get handles GET /api/v1/admin/webhooks/:id.
func (h *WebhookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid webhook id"))
		return
	}

	detail, err := h.adminSvc.GetWebhookData(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWebhookDetail(detail))
}

// Reprocess handles POST /api/v1/admin/webhooks/:id/reprocess.
func (h *WebhookHandler) Reprocess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid webhook id"))
		return
	}

	result, err := h.ingestSvc.Reprocess(c.Request.Context(), id, middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := gin.H{"webhook_id": result.Webhook.ID.String()}
	if result.Reconcile != nil {
		resp["reconcile"] = dto.FromReconcileResult(result.Reconcile)
	}
	response.OK(c, resp)
}
