package ports

import (
	"context"
	"net/http"
	"time"

	"taverna-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Reconciliation engine ---

// ReconcileInput identifies the target transaction and the status the gateway
// reported for it. ExternalTransactionID is the primary resolution key;
// OrderID+Gateway is the fallback when the payload carries no transaction id.
type ReconcileInput struct {
	Gateway               string
	ExternalTransactionID string
	OrderID               int64 // 0 when unknown
	RawStatus             string
	// Status is the canonical target status; when set it takes precedence
	// over RawStatus. Used by manual actions that already know the outcome.
	Status  domain.TransactionStatus
	Payload map[string]string
	Note    string

	// Force allows an operator to override the terminal-state guard and the
	// transition table. Actor and Reason are mandatory when Force is set and
	// are written to the history entry.
	Force  bool
	Actor  string
	Reason string
}

// ReconcileResult reports what a reconcile call did.
type ReconcileResult struct {
	Applied        bool
	PreviousStatus domain.TransactionStatus
	NewStatus      domain.TransactionStatus
	TransactionID  uuid.UUID
}

// ReconciliationService is the core state machine: it maps reported statuses
// to canonical ones and synchronizes transaction, history and order inside a
// single serialized unit per transaction.
type ReconciliationService interface {
	Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileResult, error)
}

// --- Webhook ingestion ---

// IngestResult is the recorded webhook plus the reconcile outcome, nil when
// processing stopped before reconciliation.
type IngestResult struct {
	Webhook   *domain.Webhook
	Reconcile *ReconcileResult
}

// WebhookIngestService verifies, records and dispatches gateway callbacks.
// It never propagates processing failures to the HTTP layer: the endpoint
// acknowledges 200 regardless, and failures surface in the webhook log.
type WebhookIngestService interface {
	Ingest(ctx context.Context, gateway string, rawPayload []byte, headers http.Header) (*IngestResult, error)
	// Reprocess replays a stored webhook through the engine, for manual
	// recovery of deliveries that failed to resolve.
	Reprocess(ctx context.Context, webhookID uuid.UUID, actor string) (*IngestResult, error)
}

// --- Admin actions ---

// RefundInput is a manual operator refund. Nil Amount means full refund.
type RefundInput struct {
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Reason        string
	Actor         string
}

// ForceStatusInput is a manual status override; Reason is mandatory.
type ForceStatusInput struct {
	TransactionID uuid.UUID
	Status        domain.TransactionStatus
	Reason        string
	Actor         string
}

// TransactionDetail aggregates everything the admin transaction view shows.
type TransactionDetail struct {
	Transaction *domain.Transaction
	Badge       domain.StatusBadge
	History     []domain.TransactionHistory
	Refunds     []domain.Refund
	Order       *domain.Order
}

// WebhookDetail is the admin webhook log detail: the recorded delivery plus
// the transaction it resolved to, nil when the payload carried no usable
// reference.
type WebhookDetail struct {
	Webhook     *domain.Webhook
	Transaction *domain.Transaction
}

// PaymentAdminService implements the manual operator actions. All of them
// re-enter the reconciliation engine; none bypass history logging or order
// synchronization.
type PaymentAdminService interface {
	CheckTransactionStatus(ctx context.Context, transactionID uuid.UUID, actor string) (*ReconcileResult, error)
	CheckOrderTransactionStatus(ctx context.Context, orderID int64, actor string) (*ReconcileResult, error)
	Refund(ctx context.Context, in RefundInput) (*domain.Refund, error)
	Cancel(ctx context.Context, transactionID uuid.UUID, reason, actor string) (*ReconcileResult, error)
	ForceStatus(ctx context.Context, in ForceStatusInput) (*ReconcileResult, error)
	UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status domain.TransactionStatus, reason, actor string) error
	GetTransactionDetail(ctx context.Context, transactionID uuid.UUID) (*TransactionDetail, error)
	GetWebhookData(ctx context.Context, webhookID uuid.UUID) (*WebhookDetail, error)
	GetAttemptData(ctx context.Context, attemptID int64) (*domain.PaymentAttempt, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	ListWebhooks(ctx context.Context, params WebhookListParams) ([]domain.Webhook, int64, error)
	GetDashboardStats(ctx context.Context, period string) (*TransactionStats, error)
}

// SettingsService manages gateway settings from the admin panel.
type SettingsService interface {
	ListGateways(ctx context.Context) ([]domain.GatewaySettings, error)
	ToggleGateway(ctx context.Context, gateway string, active bool, actor string) (*domain.GatewaySettings, error)
	SaveSettings(ctx context.Context, s *domain.GatewaySettings) (*domain.GatewaySettings, error)
	// TestGateway performs a reachability check against the provider without
	// touching stored state.
	TestGateway(ctx context.Context, gateway string) error
}

// --- Authentication ---

// AuthService authenticates admin operators.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CreateOperator(ctx context.Context, username, password string) (*domain.Operator, error)
}

// LoginResult carries the session token pair issued at login.
type LoginResult struct {
	Token     string
	CSRFToken string
	ExpiresAt time.Time
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT session token operations.
type TokenService interface {
	Generate(operatorID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	OperatorID uuid.UUID
	Username   string
}

// --- Stores backed by Redis ---

// DedupCache short-circuits exact webhook redeliveries before they reach the
// engine. Failure of the cache degrades to the engine's own idempotency.
type DedupCache interface {
	// CheckAndSet atomically records gateway+eventID, returning true when the
	// delivery is new.
	CheckAndSet(ctx context.Context, gateway, eventID string, ttl time.Duration) (bool, error)
}

// CSRFStore issues and validates per-operator CSRF tokens for the admin JSON
// endpoints.
type CSRFStore interface {
	Issue(ctx context.Context, operatorID string, ttl time.Duration) (string, error)
	Validate(ctx context.Context, operatorID, token string) (bool, error)
}
