package postgres

import (
	"context"
	"errors"
	"fmt"

	"taverna-payment-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AttemptRepo implements ports.AttemptRepository.
type AttemptRepo struct {
	pool Pool
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(pool Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

const attemptColumns = `id, order_id, payment_method, gateway, transaction_id, status, amount, success, additional_data, created_at`

// Create inserts a payment attempt. The id is database-assigned.
func (r *AttemptRepo) Create(ctx context.Context, a *domain.PaymentAttempt) error {
	query := `INSERT INTO payment_attempts (order_id, payment_method, gateway, transaction_id, status, amount, success, additional_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		a.OrderID, a.PaymentMethod, a.Gateway, a.TransactionID,
		a.Status, a.Amount, a.Success, a.AdditionalData, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert payment attempt: %w", err)
	}
	return nil
}

// ListByOrder fetches attempts for an order, newest first.
func (r *AttemptRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.PaymentAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_attempts WHERE order_id = $1 ORDER BY created_at DESC`, attemptColumns)

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payment attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.PaymentAttempt
	for rows.Next() {
		a := domain.PaymentAttempt{}
		err := rows.Scan(
			&a.ID, &a.OrderID, &a.PaymentMethod, &a.Gateway, &a.TransactionID,
			&a.Status, &a.Amount, &a.Success, &a.AdditionalData, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt row: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt rows: %w", err)
	}
	return attempts, nil
}

// GetByID fetches a payment attempt by id.
func (r *AttemptRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_attempts WHERE id = $1`, attemptColumns)

	a := &domain.PaymentAttempt{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.OrderID, &a.PaymentMethod, &a.Gateway, &a.TransactionID,
		&a.Status, &a.Amount, &a.Success, &a.AdditionalData, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan attempt: %w", err)
	}
	return a, nil
}
