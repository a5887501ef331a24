package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	mercadoPagoName    = "mercadopago"
	mercadoPagoBaseURL = "https://api.mercadopago.com"
)

// mercadoPagoStatusMap is the default raw-status translation table. Supplied
// at construction so deployments can extend it without a code change.
var mercadoPagoStatusMap = map[string]domain.TransactionStatus{
	"pending":      domain.TransactionStatusPending,
	"approved":     domain.TransactionStatusApproved,
	"authorized":   domain.TransactionStatusInProcess,
	"in_process":   domain.TransactionStatusInProcess,
	"in_mediation": domain.TransactionStatusInProcess,
	"rejected":     domain.TransactionStatusRejected,
	"cancelled":    domain.TransactionStatusCancelled,
	"refunded":     domain.TransactionStatusRefunded,
	"charged_back": domain.TransactionStatusRefunded,
}

// MercadoPagoConfig holds the credentials and knobs for the MercadoPago
// adapter.
type MercadoPagoConfig struct {
	AccessToken     string
	PublicKey       string
	WebhookSecret   string
	Sandbox         bool
	BaseURL         string // override for tests; defaults to the production API
	NotificationURL string
	StatusMap       map[string]domain.TransactionStatus // nil = default table
}

// MercadoPago implements ports.GatewayAdapter for MercadoPago checkout
// preferences and payments.
type MercadoPago struct {
	cfg       MercadoPagoConfig
	baseURL   string
	client    ports.HTTPClient
	statusMap map[string]domain.TransactionStatus
	log       zerolog.Logger
}

// NewMercadoPago creates a MercadoPago adapter.
func NewMercadoPago(cfg MercadoPagoConfig, client ports.HTTPClient, log zerolog.Logger) *MercadoPago {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = mercadoPagoBaseURL
	}
	statusMap := cfg.StatusMap
	if statusMap == nil {
		statusMap = mercadoPagoStatusMap
	}
	return &MercadoPago{
		cfg:       cfg,
		baseURL:   baseURL,
		client:    client,
		statusMap: statusMap,
		log:       log,
	}
}

// Name returns the gateway identifier used in routes and persistence.
func (g *MercadoPago) Name() string { return mercadoPagoName }

// InitiateTransaction creates a checkout preference and returns its redirect.
func (g *MercadoPago) InitiateTransaction(ctx context.Context, req ports.InitiateRequest) (*ports.InitiateResult, error) {
	body := map[string]any{
		"items": []map[string]any{{
			"id":          fmt.Sprintf("%d", req.OrderID),
			"title":       "Pedido #" + req.OrderNumber,
			"quantity":    1,
			"unit_price":  req.Amount.InexactFloat64(),
			"currency_id": req.Currency,
		}},
		"payer":              map[string]any{"name": req.CustomerName, "email": req.CustomerEmail},
		"external_reference": req.OrderNumber,
		"notification_url":   g.cfg.NotificationURL,
		"back_urls": map[string]any{
			"success": req.ReturnURL,
			"failure": req.CancelURL,
		},
		"auto_return": "approved",
	}

	resp, err := g.send(ctx, http.MethodPost, "/checkout/preferences", body)
	if err != nil {
		return nil, err
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return nil, apperror.ErrInvalidGatewayRequest("mercadopago preference response missing id")
	}
	redirect, _ := resp["init_point"].(string)
	if g.cfg.Sandbox {
		if sp, ok := resp["sandbox_init_point"].(string); ok && sp != "" {
			redirect = sp
		}
	}

	return &ports.InitiateResult{
		TransactionID: id,
		Status:        domain.TransactionStatusPending,
		RedirectURL:   redirect,
		Raw:           stringifyMap(resp),
	}, nil
}

// CheckTransactionStatus queries a payment by id.
func (g *MercadoPago) CheckTransactionStatus(ctx context.Context, transactionID string) (*ports.StatusResult, error) {
	resp, err := g.send(ctx, http.MethodGet, "/v1/payments/"+transactionID, nil)
	if err != nil {
		return nil, err
	}

	rawStatus, _ := resp["status"].(string)
	status, err := g.TranslateStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return &ports.StatusResult{
		Status:    status,
		RawStatus: rawStatus,
		Raw:       stringifyMap(resp),
	}, nil
}

// Refund issues a refund; nil amount refunds the full payment.
func (g *MercadoPago) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) (*ports.RefundResult, error) {
	var body map[string]any
	if amount != nil {
		body = map[string]any{"amount": amount.InexactFloat64()}
	}

	resp, err := g.send(ctx, http.MethodPost, "/v1/payments/"+transactionID+"/refunds", body)
	if err != nil {
		return nil, err
	}

	refundID := ""
	switch id := resp["id"].(type) {
	case string:
		refundID = id
	case float64:
		refundID = fmt.Sprintf("%.0f", id)
	}

	return &ports.RefundResult{RefundID: refundID, Status: domain.RefundStatusCompleted}, nil
}

// Cancel cancels a payment that has not been captured.
func (g *MercadoPago) Cancel(ctx context.Context, transactionID string) (*ports.CancelResult, error) {
	current, err := g.CheckTransactionStatus(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.TransactionStatusPending && current.Status != domain.TransactionStatusInProcess {
		return nil, apperror.ErrNotCancelable(transactionID)
	}

	_, err = g.send(ctx, http.MethodPut, "/v1/payments/"+transactionID, map[string]any{"status": "cancelled"})
	if err != nil {
		return nil, err
	}
	return &ports.CancelResult{Status: domain.TransactionStatusCancelled}, nil
}

// VerifyWebhookSignature validates the x-signature header: a
// "ts=<unix>,v1=<hex hmac>" pair over the manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (g *MercadoPago) VerifyWebhookSignature(rawPayload []byte, headers http.Header) bool {
	sigHeader := headers.Get("x-signature")
	if sigHeader == "" || g.cfg.WebhookSecret == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	event, err := g.ParseWebhook(rawPayload)
	if err != nil {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", event.TransactionID, headers.Get("x-request-id"), ts)
	return verifyHMAC(g.cfg.WebhookSecret, manifest, v1)
}

// ParseWebhook extracts the payment id and event type from a notification.
// MercadoPago notifications carry no status; the ingest service follows up
// with CheckTransactionStatus.
func (g *MercadoPago) ParseWebhook(rawPayload []byte) (*ports.WebhookEvent, error) {
	payload, err := flattenJSON(rawPayload)
	if err != nil {
		return nil, apperror.ErrInvalidGatewayRequest("mercadopago webhook payload is not valid JSON")
	}

	eventType := payload["type"]
	if eventType == "" {
		eventType = payload["action"]
	}
	if eventType == "" {
		eventType = "unknown"
	}

	transactionID := payload["data.id"]
	if transactionID == "" {
		transactionID = payload["id"]
	}

	return &ports.WebhookEvent{
		EventType:     eventType,
		TransactionID: transactionID,
		RawStatus:     payload["data.status"], // present only on some notification kinds
		Payload:       payload,
	}, nil
}

// TranslateStatus maps a raw MercadoPago status to the canonical vocabulary.
func (g *MercadoPago) TranslateStatus(rawStatus string) (domain.TransactionStatus, error) {
	if status, ok := g.statusMap[rawStatus]; ok {
		return status, nil
	}
	return "", apperror.ErrUnknownGatewayStatus(mercadoPagoName, rawStatus)
}

// send performs an authenticated API call and decodes the JSON response.
func (g *MercadoPago) send(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(mercadoPagoName, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(mercadoPagoName, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.ErrTransactionNotFound(path)
	case resp.StatusCode >= 500:
		return nil, apperror.ErrGatewayUnavailable(mercadoPagoName, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		msg := extractAPIMessage(respBody)
		if strings.Contains(strings.ToLower(msg), "already") && strings.Contains(strings.ToLower(msg), "refund") {
			return nil, apperror.ErrAlreadyRefunded()
		}
		g.log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("message", msg).Msg("mercadopago request rejected")
		return nil, apperror.ErrInvalidGatewayRequest(msg)
	}

	var decoded map[string]any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, apperror.ErrGatewayUnavailable(mercadoPagoName, fmt.Errorf("decode response: %w", err))
	}
	return decoded, nil
}

// extractAPIMessage pulls the human-readable error out of a provider error
// body, falling back to the raw body.
func extractAPIMessage(body []byte) string {
	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		if decoded.Message != "" {
			return decoded.Message
		}
		if decoded.Error != "" {
			return decoded.Error
		}
	}
	return string(body)
}

// stringifyMap flattens a decoded JSON object into the string map used for
// additional_data snapshots.
func stringifyMap(m map[string]any) map[string]string {
	out := make(map[string]string)
	flattenValue("", m, out)
	return out
}
