package integration

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	httpHandler "taverna-payment-service/internal/adapter/http/handler"
	redisStorage "taverna-payment-service/internal/adapter/storage/redis"
	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/internal/gateway"
	"taverna-payment-service/internal/service"
	"taverna-payment-service/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The integration stack runs the real HTTP layer, middleware, services and
// Redis stores (miniredis) over in-memory repositories and a stub gateway
// adapter, so webhook deliveries and admin actions are exercised end-to-end.

const (
	stubGatewayName = "stubpay"
	stubSecret      = "stub-webhook-secret"
	operatorName    = "carla"
	operatorPass    = "StrongPass123!"
)

// --- Stub gateway adapter ---

type stubGateway struct {
	mu           sync.Mutex
	statuses     map[string]string // external id -> raw status served by status checks
	refundStatus domain.RefundStatus
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		statuses:     make(map[string]string),
		refundStatus: domain.RefundStatusCompleted,
	}
}

func (g *stubGateway) setStatus(externalID, raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[externalID] = raw
}

// setRefundStatus controls what the stub reports for refund requests, e.g. a
// provider that queues refunds for later settlement.
func (g *stubGateway) setRefundStatus(status domain.RefundStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundStatus = status
}

func (g *stubGateway) Name() string { return stubGatewayName }

func (g *stubGateway) InitiateTransaction(ctx context.Context, req ports.InitiateRequest) (*ports.InitiateResult, error) {
	return &ports.InitiateResult{
		TransactionID: fmt.Sprintf("STUB-%d", req.OrderID),
		Status:        domain.TransactionStatusPending,
	}, nil
}

func (g *stubGateway) CheckTransactionStatus(ctx context.Context, transactionID string) (*ports.StatusResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	raw, ok := g.statuses[transactionID]
	if !ok {
		return nil, apperror.ErrTransactionNotFound(transactionID)
	}
	status, err := g.TranslateStatus(raw)
	if err != nil {
		return nil, err
	}
	return &ports.StatusResult{Status: status, RawStatus: raw}, nil
}

func (g *stubGateway) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) (*ports.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &ports.RefundResult{
		RefundID: "RF-" + transactionID,
		Status:   g.refundStatus,
	}, nil
}

func (g *stubGateway) Cancel(ctx context.Context, transactionID string) (*ports.CancelResult, error) {
	return &ports.CancelResult{Status: domain.TransactionStatusCancelled}, nil
}

func (g *stubGateway) VerifyWebhookSignature(rawPayload []byte, headers http.Header) bool {
	mac := hmac.New(sha256.New, []byte(stubSecret))
	mac.Write(rawPayload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(headers.Get("X-Webhook-Signature")), []byte(expected))
}

func (g *stubGateway) ParseWebhook(rawPayload []byte) (*ports.WebhookEvent, error) {
	var p struct {
		EventType     string `json:"event_type"`
		TransactionID string `json:"transaction_id"`
		OrderNumber   string `json:"order_number"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(rawPayload, &p); err != nil {
		return nil, apperror.ErrInvalidGatewayRequest("malformed callback payload")
	}
	return &ports.WebhookEvent{
		EventType:     p.EventType,
		TransactionID: p.TransactionID,
		OrderNumber:   p.OrderNumber,
		RawStatus:     p.Status,
		Payload:       map[string]string{"status": p.Status},
	}, nil
}

func (g *stubGateway) TranslateStatus(rawStatus string) (domain.TransactionStatus, error) {
	status := domain.TransactionStatus(rawStatus)
	if !status.IsValid() {
		return "", apperror.ErrUnknownGatewayStatus(stubGatewayName, rawStatus)
	}
	return status, nil
}

// --- Test application ---

type testApp struct {
	server  *httptest.Server
	redis   *miniredis.Miniredis
	gateway *stubGateway

	txRepo      *inMemoryTransactionRepo
	historyRepo *inMemoryHistoryRepo
	webhookRepo *inMemoryWebhookRepo
	refundRepo  *inMemoryRefundRepo
	orderRepo   *inMemoryOrderRepo

	// seeded fixtures
	txID       uuid.UUID
	externalID string
	orderID    int64
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	dedupCache := redisStorage.NewDedupCache(rdb)
	csrfStore := redisStorage.NewCSRFStore(rdb)

	txRepo := newInMemoryTransactionRepo()
	historyRepo := newInMemoryHistoryRepo()
	webhookRepo := newInMemoryWebhookRepo()
	refundRepo := newInMemoryRefundRepo()
	orderRepo := newInMemoryOrderRepo()
	attemptRepo := newInMemoryAttemptRepo()
	operatorRepo := newInMemoryOperatorRepo()
	settingsRepo := newInMemorySettingsRepo()
	transactor := newMemTransactor()

	stub := newStubGateway()
	registry := gateway.NewRegistry(stub)

	log := zerolog.Nop()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 8*time.Hour, "test-issuer")

	reconcileSvc := service.NewReconcileService(registry, txRepo, historyRepo, orderRepo, transactor, log)
	ingestSvc := service.NewWebhookIngestService(registry, webhookRepo, settingsRepo, dedupCache, reconcileSvc, orderRepo, log)
	adminSvc := service.NewPaymentAdminService(registry, txRepo, historyRepo, webhookRepo, refundRepo, orderRepo, attemptRepo, transactor, reconcileSvc, log)
	settingsSvc := service.NewSettingsService(registry, settingsRepo, log)
	authSvc := service.NewAuthService(operatorRepo, hashSvc, tokenSvc, csrfStore)

	// Seed operator
	hash, err := hashSvc.Hash(operatorPass)
	require.NoError(t, err)
	require.NoError(t, operatorRepo.Create(context.Background(), &domain.Operator{
		ID:           uuid.New(),
		Username:     operatorName,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}))

	// Seed one order with a pending transaction
	orderID := int64(1001)
	externalID := "STUB-555"
	txID := uuid.New()
	orderRepo.seed(domain.Order{
		ID:            orderID,
		OrderNumber:   "TAV-2026-1001",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.TransactionStatusPending,
	})
	require.NoError(t, txRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:                    txID,
		OrderID:               orderID,
		GatewayName:           stubGatewayName,
		ExternalTransactionID: externalID,
		PaymentMethod:         "pix",
		Amount:                decimal.RequireFromString("149.90"),
		Currency:              "BRL",
		Status:                domain.TransactionStatusPending,
		CreatedAt:             time.Now().UTC(),
		UpdatedAt:             time.Now().UTC(),
	}))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		IngestSvc:      ingestSvc,
		AdminSvc:       adminSvc,
		SettingsSvc:    settingsSvc,
		TokenSvc:       tokenSvc,
		CSRFStore:      csrfStore,
		RateLimitStore: nil, // rate limiting exercised in its own middleware tests
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	return &testApp{
		server:      httptest.NewServer(router),
		redis:       mr,
		gateway:     stub,
		txRepo:      txRepo,
		historyRepo: historyRepo,
		webhookRepo: webhookRepo,
		refundRepo:  refundRepo,
		orderRepo:   orderRepo,
		txID:        txID,
		externalID:  externalID,
		orderID:     orderID,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// signPayload returns the HMAC signature the stub adapter expects.
func signPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(stubSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// deliverWebhook posts a signed callback and returns the parsed ack.
func deliverWebhook(t *testing.T, app *testApp, payload []byte) map[string]interface{} {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/"+stubGatewayName, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", signPayload(payload))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	return ack
}

type session struct {
	token     string
	csrfToken string
}

func login(t *testing.T, app *testApp) session {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": operatorName, "password": operatorPass})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Token     string `json:"token"`
			CSRFToken string `json:"csrf_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotEmpty(t, envelope.Data.Token)
	require.NotEmpty(t, envelope.Data.CSRFToken)
	return session{token: envelope.Data.Token, csrfToken: envelope.Data.CSRFToken}
}

// adminRequest performs an authenticated admin call with JWT + CSRF headers.
func adminRequest(t *testing.T, app *testApp, s session, method, path string, body []byte) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-CSRF-Token", s.csrfToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

// --- Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_LoginAndSession(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	s := login(t, app)

	resp, body := adminRequest(t, app, s, http.MethodGet, "/api/v1/admin/transactions?page=1&page_size=10", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestIntegration_LoginWrongCredentials(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body, _ := json.Marshal(map[string]string{"username": operatorName, "password": "wrong"})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_AdminRequiresJWT(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	req, _ := http.NewRequest(http.MethodGet, app.server.URL+"/api/v1/admin/transactions", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_UnsafeMethodRequiresCSRF(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	s := login(t, app)
	body, _ := json.Marshal(map[string]string{"reason": "customer request"})

	req, _ := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/admin/transactions/"+app.txID.String()+"/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	// no X-CSRF-Token header
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestIntegration_WebhookApprovesTransactionAndSyncsOrder(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	payload, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	ack := deliverWebhook(t, app, payload)
	assert.Equal(t, "received", ack["status"])
	assert.NotEmpty(t, ack["webhook_id"])

	s := login(t, app)
	resp, body := adminRequest(t, app, s, http.MethodGet, "/api/v1/admin/transactions/"+app.txID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "approved", txn["status"])
	assert.Equal(t, "149.90", txn["amount"])

	order := data["order"].(map[string]interface{})
	assert.Equal(t, "processing", order["status"])
	assert.Equal(t, "approved", order["payment_status"])
}

func TestIntegration_WebhookBadSignatureIsLoggedNotApplied(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	payload, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	req, _ := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/"+stubGatewayName, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", "deadbeef")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	// The provider always gets 200; the failed verification lives in the log.
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
}

func TestIntegration_WebhookUnknownGateway(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Post(app.server.URL+"/webhooks/nonexistent", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_DuplicateDeliveryShortCircuits(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	payload, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})

	deliverWebhook(t, app, payload)
	ack := deliverWebhook(t, app, payload)

	webhookID, err := uuid.Parse(ack["webhook_id"].(string))
	require.NoError(t, err)
	w, err := app.webhookRepo.GetByID(context.Background(), webhookID)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "duplicate delivery ignored", w.ProcessResult)

	// Exactly one applied transition in the history.
	history, err := app.historyRepo.ListByTransaction(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestIntegration_LateDeliveryAfterTerminalStateIsIgnored(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	approve, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	deliverWebhook(t, app, approve)

	refunded, _ := json.Marshal(map[string]string{
		"event_type":     "payment.refunded",
		"transaction_id": app.externalID,
		"status":         "refunded",
	})
	deliverWebhook(t, app, refunded)

	// A late "approved" replay must not resurrect the transaction.
	lateApprove, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
		"order_number":   "TAV-2026-1001", // distinct payload, bypasses dedup
	})
	deliverWebhook(t, app, lateApprove)

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusRefunded, txn.Status)

	order, err := app.orderRepo.GetByID(context.Background(), app.orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefunded, order.Status)
}

func TestIntegration_WebhookResolvesByOrderNumber(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	payload, _ := json.Marshal(map[string]string{
		"event_type":   "payment.updated",
		"order_number": "TAV-2026-1001",
		"status":       "approved",
	})
	deliverWebhook(t, app, payload)

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)
}

func TestIntegration_RefundFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	approve, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	deliverWebhook(t, app, approve)

	s := login(t, app)
	path := "/api/v1/admin/transactions/" + app.txID.String() + "/refund"

	// Partial refund keeps the transaction approved
	body, _ := json.Marshal(map[string]string{"amount": "50.00", "reason": "damaged print"})
	resp, _ := adminRequest(t, app, s, http.MethodPost, path, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)

	// Over the remaining balance: rejected
	body, _ = json.Marshal(map[string]string{"amount": "149.90", "reason": "too much"})
	resp, parsed := adminRequest(t, app, s, http.MethodPost, path, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PAY_001", parsed["error_code"])

	// Refunding exactly the remainder completes the transaction
	body, _ = json.Marshal(map[string]string{"amount": "99.90", "reason": "remainder"})
	resp, _ = adminRequest(t, app, s, http.MethodPost, path, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err = app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusRefunded, txn.Status)

	order, err := app.orderRepo.GetByID(context.Background(), app.orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusRefunded, order.Status)
}

func TestIntegration_PendingRefundHoldsBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	approve, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	deliverWebhook(t, app, approve)

	// The provider accepts refunds but settles them asynchronously.
	app.gateway.setRefundStatus(domain.RefundStatusPending)

	s := login(t, app)
	path := "/api/v1/admin/transactions/" + app.txID.String() + "/refund"

	body, _ := json.Marshal(map[string]string{"amount": "100.00", "reason": "misprinted miniature"})
	resp, _ := adminRequest(t, app, s, http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unsettled, so the transaction is not refunded yet.
	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)

	// The pending 100.00 still holds the balance: 60.00 more on a 149.90
	// transaction must be rejected.
	body, _ = json.Marshal(map[string]string{"amount": "60.00", "reason": "second refund"})
	resp, parsed := adminRequest(t, app, s, http.MethodPost, path, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PAY_001", parsed["error_code"])

	// The remainder fits, but while it is pending nothing settles.
	body, _ = json.Marshal(map[string]string{"amount": "49.90", "reason": "remainder"})
	resp, _ = adminRequest(t, app, s, http.MethodPost, path, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err = app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)
}

func TestIntegration_CancelPendingTransaction(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	s := login(t, app)
	body, _ := json.Marshal(map[string]string{"reason": "customer gave up"})
	resp, parsed := adminRequest(t, app, s, http.MethodPost, "/api/v1/admin/transactions/"+app.txID.String()+"/cancel", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["applied"])
	assert.Equal(t, "cancelled", data["new_status"])

	order, err := app.orderRepo.GetByID(context.Background(), app.orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func TestIntegration_ForceStatusOverridesTerminalState(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	failed, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "failed",
	})
	deliverWebhook(t, app, failed)

	s := login(t, app)
	body, _ := json.Marshal(map[string]string{"status": "approved", "reason": "confirmed manually with provider"})
	resp, parsed := adminRequest(t, app, s, http.MethodPost, "/api/v1/admin/transactions/"+app.txID.String()+"/force-status", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["applied"])

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)
}

func TestIntegration_ManualStatusCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.gateway.setStatus(app.externalID, "approved")

	s := login(t, app)
	resp, parsed := adminRequest(t, app, s, http.MethodPost, "/api/v1/admin/transactions/"+app.txID.String()+"/check", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["applied"])
	assert.Equal(t, "approved", data["new_status"])
}

func TestIntegration_DashboardStats(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	approve, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	deliverWebhook(t, app, approve)

	s := login(t, app)
	resp, parsed := adminRequest(t, app, s, http.MethodGet, "/api/v1/admin/dashboard/stats?period=7d", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_transactions"])
	assert.Equal(t, float64(1), data["approved"])
	assert.Equal(t, "149.90", data["total_approved"])
}

func TestIntegration_GatewaySettingsToggle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	s := login(t, app)

	// Disable the gateway
	body, _ := json.Marshal(map[string]bool{"active": false})
	resp, _ := adminRequest(t, app, s, http.MethodPut, "/api/v1/admin/gateways/"+stubGatewayName+"/toggle", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Deliveries for a disabled gateway are logged but not processed
	payload, _ := json.Marshal(map[string]string{
		"event_type":     "payment.updated",
		"transaction_id": app.externalID,
		"status":         "approved",
	})
	ack := deliverWebhook(t, app, payload)
	assert.NotEmpty(t, ack["webhook_id"])

	txn, err := app.txRepo.GetByID(context.Background(), app.txID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
}
