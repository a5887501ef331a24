package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

// Create inserts a webhook delivery record. Runs outside the reconciliation
// transaction so the record survives a processing rollback.
func (r *WebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	query := `INSERT INTO webhooks (id, gateway, event_type, transaction_id, success, request_data, process_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Gateway, w.EventType, w.TransactionID,
		w.Success, w.RequestData, w.ProcessResult, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook: %w", err)
	}
	return nil
}

// SetOutcome writes the single processing outcome update for a record.
func (r *WebhookRepo) SetOutcome(ctx context.Context, id uuid.UUID, success bool, processResult string) error {
	query := `UPDATE webhooks SET success = $1, process_result = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, success, processResult, id)
	if err != nil {
		return fmt.Errorf("set webhook outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook not found: %s", id)
	}
	return nil
}

// GetByID fetches a webhook record by UUID.
func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error) {
	query := `SELECT id, gateway, event_type, transaction_id, success, request_data, process_result, created_at
		FROM webhooks WHERE id = $1`

	w := &domain.Webhook{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Gateway, &w.EventType, &w.TransactionID,
		&w.Success, &w.RequestData, &w.ProcessResult, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook: %w", err)
	}
	return w, nil
}

// List fetches webhook records with filtering and pagination, newest first.
func (r *WebhookRepo) List(ctx context.Context, params ports.WebhookListParams) ([]domain.Webhook, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Gateway != nil {
		conditions = append(conditions, fmt.Sprintf("gateway = $%d", argIdx))
		args = append(args, *params.Gateway)
		argIdx++
	}
	if params.Success != nil {
		conditions = append(conditions, fmt.Sprintf("success = $%d", argIdx))
		args = append(args, *params.Success)
		argIdx++
	}
	if params.TransactionID != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_id = $%d", argIdx))
		args = append(args, *params.TransactionID)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM webhooks %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count webhooks: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, gateway, event_type, transaction_id, success, request_data, process_result, created_at
		FROM webhooks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list webhooks: %w", err)
	}
	defer rows.Close()

	var hooks []domain.Webhook
	for rows.Next() {
		w := domain.Webhook{}
		err := rows.Scan(
			&w.ID, &w.Gateway, &w.EventType, &w.TransactionID,
			&w.Success, &w.RequestData, &w.ProcessResult, &w.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan webhook row: %w", err)
		}
		hooks = append(hooks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate webhook rows: %w", err)
	}
	return hooks, total, nil
}
