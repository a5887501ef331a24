package postgres

import (
	"context"
	"fmt"

	"taverna-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RefundRepo implements ports.RefundRepository.
type RefundRepo struct {
	pool Pool
}

// NewRefundRepo creates a new RefundRepo.
func NewRefundRepo(pool Pool) *RefundRepo {
	return &RefundRepo{pool: pool}
}

// Create inserts a refund within a database transaction.
func (r *RefundRepo) Create(ctx context.Context, tx pgx.Tx, ref *domain.Refund) error {
	query := `INSERT INTO refunds (id, transaction_id, refund_id, amount, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		ref.ID, ref.TransactionID, ref.RefundID, ref.Amount,
		ref.Status, ref.Reason, ref.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refund: %w", err)
	}
	return nil
}

// ListByTransaction fetches refunds issued against a transaction, oldest first.
func (r *RefundRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.Refund, error) {
	query := `SELECT id, transaction_id, refund_id, amount, status, reason, created_at
		FROM refunds WHERE transaction_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		ref := domain.Refund{}
		err := rows.Scan(&ref.ID, &ref.TransactionID, &ref.RefundID, &ref.Amount, &ref.Status, &ref.Reason, &ref.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan refund row: %w", err)
		}
		refunds = append(refunds, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refund rows: %w", err)
	}
	return refunds, nil
}

// SumActive returns the sum of non-failed refund amounts as a decimal
// string, inside the caller's transaction so the cap check sees a consistent
// view under the row lock. Pending refunds count against the balance until
// the provider settles them.
func (r *RefundRepo) SumActive(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (string, error) {
	query := `SELECT COALESCE(SUM(amount), 0)::text FROM refunds
		WHERE transaction_id = $1 AND status <> 'failed'`

	var sum string
	err := tx.QueryRow(ctx, query, transactionID).Scan(&sum)
	if err != nil {
		return "", fmt.Errorf("sum refunds: %w", err)
	}
	return sum, nil
}
