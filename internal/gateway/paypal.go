package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	payPalName           = "paypal"
	payPalBaseURL        = "https://api-m.paypal.com"
	payPalSandboxBaseURL = "https://api-m.sandbox.paypal.com"

	// tokens are refreshed this long before the provider expiry
	payPalTokenSkew = 60 * time.Second
)

// payPalStatusMap translates the REST orders/payments vocabulary (uppercase)
// and the legacy IPN vocabulary (capitalized) into canonical statuses.
var payPalStatusMap = map[string]domain.TransactionStatus{
	"CREATED":               domain.TransactionStatusPending,
	"SAVED":                 domain.TransactionStatusPending,
	"PENDING":               domain.TransactionStatusPending,
	"PAYER_ACTION_REQUIRED": domain.TransactionStatusPending,
	"APPROVED":              domain.TransactionStatusInProcess,
	"COMPLETED":             domain.TransactionStatusApproved,
	"CAPTURED":              domain.TransactionStatusApproved,
	"VOIDED":                domain.TransactionStatusCancelled,
	"DENIED":                domain.TransactionStatusRejected,
	"EXPIRED":               domain.TransactionStatusFailed,
	"REFUNDED":              domain.TransactionStatusRefunded,

	// legacy IPN payment_status values
	"Completed": domain.TransactionStatusApproved,
	"Pending":   domain.TransactionStatusPending,
	"Denied":    domain.TransactionStatusRejected,
	"Failed":    domain.TransactionStatusFailed,
	"Refunded":  domain.TransactionStatusRefunded,
	"Reversed":  domain.TransactionStatusRefunded,
}

// PayPalConfig holds the credentials and knobs for the PayPal adapter.
type PayPalConfig struct {
	ClientID      string
	ClientSecret  string
	WebhookSecret string
	Sandbox       bool
	BaseURL       string // override for tests
	ReturnURL     string
	CancelURL     string
	StatusMap     map[string]domain.TransactionStatus // nil = default table
}

// PayPal implements ports.GatewayAdapter over the PayPal REST orders API,
// with legacy IPN parsing kept for the storefront's old notification route.
type PayPal struct {
	cfg       PayPalConfig
	baseURL   string
	client    ports.HTTPClient
	statusMap map[string]domain.TransactionStatus
	log       zerolog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPal creates a PayPal adapter.
func NewPayPal(cfg PayPalConfig, client ports.HTTPClient, log zerolog.Logger) *PayPal {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Sandbox {
			baseURL = payPalSandboxBaseURL
		} else {
			baseURL = payPalBaseURL
		}
	}
	statusMap := cfg.StatusMap
	if statusMap == nil {
		statusMap = payPalStatusMap
	}
	return &PayPal{
		cfg:       cfg,
		baseURL:   baseURL,
		client:    client,
		statusMap: statusMap,
		log:       log,
	}
}

// Name returns the gateway identifier used in routes and persistence.
func (g *PayPal) Name() string { return payPalName }

// InitiateTransaction creates a checkout order and returns the approval link.
func (g *PayPal) InitiateTransaction(ctx context.Context, req ports.InitiateRequest) (*ports.InitiateResult, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"reference_id": req.OrderNumber,
			"invoice_id":   req.OrderNumber,
			"amount": map[string]any{
				"currency_code": req.Currency,
				"value":         req.Amount.StringFixed(2),
			},
		}},
		"application_context": map[string]any{
			"return_url": req.ReturnURL,
			"cancel_url": req.CancelURL,
		},
	}

	resp, err := g.send(ctx, http.MethodPost, "/v2/checkout/orders", body)
	if err != nil {
		return nil, err
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return nil, apperror.ErrInvalidGatewayRequest("paypal order response missing id")
	}

	return &ports.InitiateResult{
		TransactionID: id,
		Status:        domain.TransactionStatusPending,
		RedirectURL:   approvalLink(resp),
		Raw:           stringifyMap(resp),
	}, nil
}

// CheckTransactionStatus queries an order by id.
func (g *PayPal) CheckTransactionStatus(ctx context.Context, transactionID string) (*ports.StatusResult, error) {
	resp, err := g.send(ctx, http.MethodGet, "/v2/checkout/orders/"+transactionID, nil)
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

// Refund refunds the capture behind an order; nil amount refunds in full.
func (g *PayPal) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) (*ports.RefundResult, error) {
	captureID, currency, err := g.captureFor(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var body map[string]any
	if amount != nil {
		body = map[string]any{
			"amount": map[string]any{
				"currency_code": currency,
				"value":         amount.StringFixed(2),
			},
		}
	}

	resp, err := g.send(ctx, http.MethodPost, "/v2/payments/captures/"+captureID+"/refund", body)
	if err != nil {
		return nil, err
	}

	refundID, _ := resp["id"].(string)
	rawStatus, _ := resp["status"].(string)
	status := domain.RefundStatusCompleted
	if rawStatus == "PENDING" {
		status = domain.RefundStatusPending
	}
	return &ports.RefundResult{RefundID: refundID, Status: status}, nil
}

// Cancel voids an order that has not been captured yet.
func (g *PayPal) Cancel(ctx context.Context, transactionID string) (*ports.CancelResult, error) {
	current, err := g.CheckTransactionStatus(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.TransactionStatusApproved || current.Status.IsTerminal() {
		return nil, apperror.ErrNotCancelable(transactionID)
	}

	// There is no explicit void call for checkout orders; abandoned orders
	// expire provider-side. Local state moves to cancelled.
	return &ports.CancelResult{Status: domain.TransactionStatusCancelled}, nil
}

// VerifyWebhookSignature validates Paypal-Transmission-Sig: an HMAC-SHA256
// over "<transmission-id>|<transmission-time>|<webhook-body>" with the
// configured webhook secret.
func (g *PayPal) VerifyWebhookSignature(rawPayload []byte, headers http.Header) bool {
	sig := headers.Get("Paypal-Transmission-Sig")
	if sig == "" || g.cfg.WebhookSecret == "" {
		return false
	}
	manifest := fmt.Sprintf("%s|%s|%s",
		headers.Get("Paypal-Transmission-Id"),
		headers.Get("Paypal-Transmission-Time"),
		string(rawPayload))
	return verifyHMAC(g.cfg.WebhookSecret, manifest, sig)
}

// ParseWebhook handles both the REST webhook JSON envelope and legacy IPN
// form-encoded bodies.
func (g *PayPal) ParseWebhook(rawPayload []byte) (*ports.WebhookEvent, error) {
	trimmed := bytes.TrimSpace(rawPayload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return g.parseRESTWebhook(trimmed)
	}
	return g.parseIPN(trimmed)
}

func (g *PayPal) parseRESTWebhook(rawPayload []byte) (*ports.WebhookEvent, error) {
	payload, err := flattenJSON(rawPayload)
	if err != nil {
		return nil, apperror.ErrInvalidGatewayRequest("paypal webhook payload is not valid JSON")
	}

	eventType := payload["event_type"]
	if eventType == "" {
		eventType = "unknown"
	}

	// Refund events carry the refund id in resource.id; the order id rides in
	// the supplementary links. Prefer the order reference when present.
	transactionID := payload["resource.supplementary_data.related_ids.order_id"]
	if transactionID == "" {
		transactionID = payload["resource.id"]
	}
	if transactionID == "" {
		// stored IPN payloads replayed as JSON
		transactionID = payload["txn_id"]
	}

	rawStatus := payload["resource.status"]
	if strings.HasPrefix(eventType, "PAYMENT.CAPTURE.REFUNDED") {
		rawStatus = "REFUNDED"
	}
	if rawStatus == "" {
		rawStatus = payload["payment_status"]
	}

	orderNumber := payload["resource.invoice_id"]
	if orderNumber == "" {
		orderNumber = payload["invoice"]
	}

	return &ports.WebhookEvent{
		EventType:     eventType,
		TransactionID: transactionID,
		OrderNumber:   orderNumber,
		RawStatus:     rawStatus,
		Payload:       payload,
	}, nil
}

// parseIPN decodes the legacy urlencoded notification body.
func (g *PayPal) parseIPN(rawPayload []byte) (*ports.WebhookEvent, error) {
	values, err := url.ParseQuery(string(rawPayload))
	if err != nil {
		return nil, apperror.ErrInvalidGatewayRequest("paypal ipn payload is not form-encoded")
	}

	payload := make(map[string]string, len(values))
	for k := range values {
		payload[k] = values.Get(k)
	}

	return &ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: payload["txn_id"],
		OrderNumber:   payload["invoice"],
		RawStatus:     payload["payment_status"],
		Payload:       payload,
	}, nil
}

// TranslateStatus maps a raw PayPal status to the canonical vocabulary.
func (g *PayPal) TranslateStatus(rawStatus string) (domain.TransactionStatus, error) {
	if status, ok := g.statusMap[rawStatus]; ok {
		return status, nil
	}
	return "", apperror.ErrUnknownGatewayStatus(payPalName, rawStatus)
}

// captureFor resolves the capture id and currency behind a checkout order.
func (g *PayPal) captureFor(ctx context.Context, orderID string) (string, string, error) {
	resp, err := g.send(ctx, http.MethodGet, "/v2/checkout/orders/"+orderID, nil)
	if err != nil {
		return "", "", err
	}

	flat := stringifyMap(resp)
	captureID := flat["purchase_units.0.payments.captures.0.id"]
	if captureID == "" {
		return "", "", apperror.ErrNotRefundable(orderID)
	}
	currency := flat["purchase_units.0.payments.captures.0.amount.currency_code"]
	return captureID, currency, nil
}

// token returns a cached OAuth access token, refreshing when near expiry.
func (g *PayPal) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-payPalTokenSkew)) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("build token request: %w", err))
	}
	req.SetBasicAuth(g.cfg.ClientID, g.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", apperror.ErrGatewayUnavailable(payPalName, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", apperror.ErrGatewayUnavailable(payPalName, fmt.Errorf("token request status %d", resp.StatusCode))
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperror.ErrGatewayUnavailable(payPalName, fmt.Errorf("decode token response: %w", err))
	}

	g.accessToken = decoded.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(decoded.ExpiresIn) * time.Second)
	return g.accessToken, nil
}

// send performs an authenticated API call and decodes the JSON response.
func (g *PayPal) send(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}

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
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(payPalName, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(payPalName, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.ErrTransactionNotFound(path)
	case resp.StatusCode >= 500:
		return nil, apperror.ErrGatewayUnavailable(payPalName, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		msg := extractAPIMessage(respBody)
		if strings.Contains(msg, "CAPTURE_FULLY_REFUNDED") {
			return nil, apperror.ErrAlreadyRefunded()
		}
		g.log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("message", msg).Msg("paypal request rejected")
		return nil, apperror.ErrInvalidGatewayRequest(msg)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return map[string]any{}, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, apperror.ErrGatewayUnavailable(payPalName, fmt.Errorf("decode response: %w", err))
	}
	return decoded, nil
}

// approvalLink picks the payer approval URL out of the HATEOAS links array.
func approvalLink(resp map[string]any) string {
	links, _ := resp["links"].([]any)
	for _, l := range links {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if rel, _ := link["rel"].(string); rel == "approve" || rel == "payer-action" {
			href, _ := link["href"].(string)
			return href
		}
	}
	return ""
}
