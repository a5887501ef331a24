package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, order_id, gateway_name, external_transaction_id, payment_method,
	amount, currency, status, additional_data, created_at, updated_at`

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, order_id, gateway_name, external_transaction_id, payment_method,
		amount, currency, status, additional_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.OrderID, t.GatewayName, t.ExternalTransactionID, t.PaymentMethod,
		t.Amount, t.Currency, t.Status, t.AdditionalData,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByExternalID fetches a transaction by gateway and external id.
func (r *TransactionRepo) GetByExternalID(ctx context.Context, gateway, externalID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE gateway_name = $1 AND external_transaction_id = $2`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, gateway, externalID))
}

// GetByExternalIDForUpdate fetches a transaction by gateway and external id,
// taking the row lock that serializes concurrent deliveries for it.
func (r *TransactionRepo) GetByExternalIDForUpdate(ctx context.Context, tx pgx.Tx, gateway, externalID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE gateway_name = $1 AND external_transaction_id = $2 FOR UPDATE`, transactionColumns)

	return r.scanTransaction(tx.QueryRow(ctx, query, gateway, externalID))
}

// GetByOrderForUpdate fetches the latest transaction for an order and gateway
// under a row lock. Fallback key when a callback carries no transaction id.
func (r *TransactionRepo) GetByOrderForUpdate(ctx context.Context, tx pgx.Tx, orderID int64, gateway string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE order_id = $1 AND gateway_name = $2
		ORDER BY created_at DESC LIMIT 1 FOR UPDATE`, transactionColumns)

	return r.scanTransaction(tx.QueryRow(ctx, query, orderID, gateway))
}

// UpdateStatus updates a transaction's status within a database transaction.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	now := time.Now()
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, now, id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// List fetches transactions with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Gateway != nil {
		conditions = append(conditions, fmt.Sprintf("gateway_name = $%d", argIdx))
		args = append(args, *params.Gateway)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.OrderID != nil {
		conditions = append(conditions, fmt.Sprintf("order_id = $%d", argIdx))
		args = append(args, *params.OrderID)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.OrderID, &t.GatewayName, &t.ExternalTransactionID, &t.PaymentMethod,
			&t.Amount, &t.Currency, &t.Status, &t.AdditionalData,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetStats retrieves aggregated transaction statistics for the dashboard.
func (r *TransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.TransactionStats, error) {
	var args []any
	condition := "TRUE"
	if periodStart != nil {
		condition = "created_at >= to_timestamp($1)"
		args = append(args, *periodStart)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'approved') AS approved,
		COUNT(*) FILTER (WHERE status IN ('pending', 'in_process')) AS pending,
		COUNT(*) FILTER (WHERE status IN ('rejected', 'failed')) AS failed,
		COUNT(*) FILTER (WHERE status = 'refunded') AS refunded,
		COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0)::text AS total_approved,
		COALESCE(SUM(amount) FILTER (WHERE status = 'refunded'), 0)::text AS total_refunded
		FROM transactions WHERE %s`, condition)

	stats := &ports.TransactionStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Approved, &stats.Pending, &stats.Failed,
		&stats.Refunded, &stats.TotalApproved, &stats.TotalRefunded,
	)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	return stats, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.OrderID, &t.GatewayName, &t.ExternalTransactionID, &t.PaymentMethod,
		&t.Amount, &t.Currency, &t.Status, &t.AdditionalData,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
