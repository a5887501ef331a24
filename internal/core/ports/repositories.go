package ports

import (
	"context"

	"taverna-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository defines persistence operations for transactions.
// Methods accepting pgx.Tx run inside the reconciliation transaction and, for
// the ForUpdate variants, take the per-transaction row lock that serializes
// concurrent webhook deliveries.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByExternalID(ctx context.Context, gateway, externalID string) (*domain.Transaction, error)
	GetByExternalIDForUpdate(ctx context.Context, tx pgx.Tx, gateway, externalID string) (*domain.Transaction, error)
	GetByOrderForUpdate(ctx context.Context, tx pgx.Tx, orderID int64, gateway string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetStats(ctx context.Context, periodStart *int64) (*TransactionStats, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	Gateway  *string
	Status   *domain.TransactionStatus
	OrderID  *int64
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// TransactionStats holds aggregated figures for the admin dashboard.
type TransactionStats struct {
	TotalTransactions int64
	Approved          int64
	Pending           int64
	Failed            int64
	Refunded          int64
	TotalApproved     string // decimal sum of approved amounts
	TotalRefunded     string // decimal sum of completed refund amounts
}

// HistoryRepository appends and reads the immutable transaction status log.
type HistoryRepository interface {
	Append(ctx context.Context, tx pgx.Tx, entry *domain.TransactionHistory) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.TransactionHistory, error)
}

// WebhookRepository persists webhook delivery records. Records are immutable
// except for the single outcome write after processing.
type WebhookRepository interface {
	Create(ctx context.Context, w *domain.Webhook) error
	SetOutcome(ctx context.Context, id uuid.UUID, success bool, processResult string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error)
	List(ctx context.Context, params WebhookListParams) ([]domain.Webhook, int64, error)
}

// WebhookListParams holds filter + pagination for the admin webhook log.
type WebhookListParams struct {
	Gateway       *string
	Success       *bool
	TransactionID *string
	Page          int
	PageSize      int
}

// RefundRepository persists refunds issued against transactions.
type RefundRepository interface {
	Create(ctx context.Context, tx pgx.Tx, r *domain.Refund) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.Refund, error)
	// SumActive returns the decimal string sum of refund amounts still counting
	// against the transaction balance: pending and completed rows. Failed
	// refunds release their amount back to the balance.
	SumActive(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (string, error)
}

// OrderRepository synchronizes the storefront order projection.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	SyncPaymentStatus(ctx context.Context, tx pgx.Tx, orderID int64, status domain.OrderStatus, paymentStatus domain.TransactionStatus) error
}

// AttemptRepository records payment attempts for the admin order view.
type AttemptRepository interface {
	Create(ctx context.Context, a *domain.PaymentAttempt) error
	ListByOrder(ctx context.Context, orderID int64) ([]domain.PaymentAttempt, error)
	GetByID(ctx context.Context, id int64) (*domain.PaymentAttempt, error)
}

// OperatorRepository defines persistence for admin panel users.
type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByUsername(ctx context.Context, username string) (*domain.Operator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
}

// SettingsRepository persists operator-mutable gateway settings.
type SettingsRepository interface {
	Get(ctx context.Context, gateway string) (*domain.GatewaySettings, error)
	List(ctx context.Context) ([]domain.GatewaySettings, error)
	Upsert(ctx context.Context, s *domain.GatewaySettings) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
