package postgres

import (
	"context"
	"errors"
	"fmt"

	"taverna-payment-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SettingsRepo implements ports.SettingsRepository.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get fetches settings for a gateway.
func (r *SettingsRepo) Get(ctx context.Context, gateway string) (*domain.GatewaySettings, error) {
	query := `SELECT gateway, display_name, active, sandbox, updated_by, updated_at
		FROM gateway_settings WHERE gateway = $1`

	s := &domain.GatewaySettings{}
	err := r.pool.QueryRow(ctx, query, gateway).Scan(
		&s.Gateway, &s.DisplayName, &s.Active, &s.Sandbox, &s.UpdatedBy, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan gateway settings: %w", err)
	}
	return s, nil
}

// List fetches settings for all gateways.
func (r *SettingsRepo) List(ctx context.Context) ([]domain.GatewaySettings, error) {
	query := `SELECT gateway, display_name, active, sandbox, updated_by, updated_at
		FROM gateway_settings ORDER BY gateway`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gateway settings: %w", err)
	}
	defer rows.Close()

	var all []domain.GatewaySettings
	for rows.Next() {
		s := domain.GatewaySettings{}
		err := rows.Scan(&s.Gateway, &s.DisplayName, &s.Active, &s.Sandbox, &s.UpdatedBy, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan gateway settings row: %w", err)
		}
		all = append(all, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gateway settings rows: %w", err)
	}
	return all, nil
}

// Upsert creates or replaces settings for a gateway.
func (r *SettingsRepo) Upsert(ctx context.Context, s *domain.GatewaySettings) error {
	query := `INSERT INTO gateway_settings (gateway, display_name, active, sandbox, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (gateway) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			active = EXCLUDED.active,
			sandbox = EXCLUDED.sandbox,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query, s.Gateway, s.DisplayName, s.Active, s.Sandbox, s.UpdatedBy, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert gateway settings: %w", err)
	}
	return nil
}
