package ports

import (
	"context"
	"net/http"

	"taverna-payment-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// InitiateRequest carries the order, customer and payment data a gateway
// needs to open a transaction.
type InitiateRequest struct {
	OrderID       int64
	OrderNumber   string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	CustomerName  string
	CustomerEmail string
	ReturnURL     string
	CancelURL     string
}

// InitiateResult is the outcome of opening a transaction at the gateway.
type InitiateResult struct {
	TransactionID string
	Status        domain.TransactionStatus
	RedirectURL   string
	Raw           map[string]string
}

// StatusResult is the gateway's authoritative view of a transaction.
type StatusResult struct {
	Status    domain.TransactionStatus
	RawStatus string
	Raw       map[string]string
}

// RefundResult is the outcome of a refund call.
type RefundResult struct {
	RefundID string
	Status   domain.RefundStatus
}

// CancelResult is the outcome of a cancel call.
type CancelResult struct {
	Status domain.TransactionStatus
}

// WebhookEvent is a verified, parsed gateway callback ready for the
// reconciliation engine.
type WebhookEvent struct {
	EventType     string
	TransactionID string // external id; empty when the payload carries none
	OrderNumber   string // fallback resolution key
	RawStatus     string
	Payload       map[string]string
}

// GatewayAdapter is the uniform contract every payment provider implements.
// Raw provider statuses are translated through a table supplied at adapter
// construction; statuses missing from the table fail with
// UnknownGatewayStatus rather than silently defaulting.
type GatewayAdapter interface {
	Name() string

	InitiateTransaction(ctx context.Context, req InitiateRequest) (*InitiateResult, error)

	// CheckTransactionStatus fails with TransactionNotFound or
	// GatewayUnavailable; callers retry only the latter.
	CheckTransactionStatus(ctx context.Context, transactionID string) (*StatusResult, error)

	// Refund with a nil amount performs a full refund.
	Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) (*RefundResult, error)

	// Cancel fails with NotCancelable once the gateway has captured funds.
	Cancel(ctx context.Context, transactionID string) (*CancelResult, error)

	// VerifyWebhookSignature is pure and side-effect free; HMAC comparison is
	// constant-time.
	VerifyWebhookSignature(rawPayload []byte, headers http.Header) bool

	// ParseWebhook extracts the event from a verified payload.
	ParseWebhook(rawPayload []byte) (*WebhookEvent, error)

	// TranslateStatus maps a raw provider status to the canonical vocabulary.
	TranslateStatus(rawStatus string) (domain.TransactionStatus, error)
}

// GatewayRegistry resolves adapters by gateway name, honoring the persisted
// active flag.
type GatewayRegistry interface {
	Get(name string) (GatewayAdapter, error)
	Names() []string
}

// HTTPClient abstracts outbound HTTP for adapter testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
