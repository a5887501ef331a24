package postgres

import (
	"context"
	"fmt"

	"taverna-payment-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HistoryRepo implements ports.HistoryRepository. The table is append-only;
// there is no update or delete path.
type HistoryRepo struct {
	pool Pool
}

// NewHistoryRepo creates a new HistoryRepo.
func NewHistoryRepo(pool Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

// Append inserts a history entry within a database transaction.
func (r *HistoryRepo) Append(ctx context.Context, tx pgx.Tx, entry *domain.TransactionHistory) error {
	query := `INSERT INTO transaction_history (id, transaction_id, status, snapshot, note, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		entry.ID, entry.TransactionID, entry.Status, entry.Snapshot,
		entry.Note, entry.Actor, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByTransaction fetches a transaction's history, oldest first.
func (r *HistoryRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.TransactionHistory, error) {
	query := `SELECT id, transaction_id, status, snapshot, note, actor, created_at
		FROM transaction_history WHERE transaction_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []domain.TransactionHistory
	for rows.Next() {
		e := domain.TransactionHistory{}
		err := rows.Scan(&e.ID, &e.TransactionID, &e.Status, &e.Snapshot, &e.Note, &e.Actor, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
