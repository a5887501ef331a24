package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// SettingsServiceImpl implements ports.SettingsService. Credentials live in
// static config; only the operator-facing flags are persisted here.
type SettingsServiceImpl struct {
	registry     ports.GatewayRegistry
	settingsRepo ports.SettingsRepository
	log          zerolog.Logger
}

// NewSettingsService creates a new SettingsServiceImpl.
func NewSettingsService(registry ports.GatewayRegistry, settingsRepo ports.SettingsRepository, log zerolog.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		registry:     registry,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// ListGateways merges registered adapters with their stored settings. A
// gateway without a stored row shows up inactive with defaults.
func (s *SettingsServiceImpl) ListGateways(ctx context.Context) ([]domain.GatewaySettings, error) {
	stored, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list settings: %w", err))
	}
	byName := make(map[string]domain.GatewaySettings, len(stored))
	for _, st := range stored {
		byName[st.Gateway] = st
	}

	var all []domain.GatewaySettings
	for _, name := range s.registry.Names() {
		if st, ok := byName[name]; ok {
			all = append(all, st)
			continue
		}
		all = append(all, domain.GatewaySettings{Gateway: name, DisplayName: name, Active: false})
	}
	return all, nil
}

// ToggleGateway flips the active flag for a gateway.
func (s *SettingsServiceImpl) ToggleGateway(ctx context.Context, gateway string, active bool, actor string) (*domain.GatewaySettings, error) {
	if _, err := s.registry.Get(gateway); err != nil {
		return nil, err
	}

	st, err := s.settingsRepo.Get(ctx, gateway)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load settings: %w", err))
	}
	if st == nil {
		st = &domain.GatewaySettings{Gateway: gateway, DisplayName: gateway}
	}

	st.Active = active
	st.UpdatedBy = actor
	st.UpdatedAt = time.Now().UTC()
	if err := s.settingsRepo.Upsert(ctx, st); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save settings: %w", err))
	}

	s.log.Info().
		Str("gateway", gateway).
		Bool("active", active).
		Str("actor", actor).
		Msg("gateway toggled")

	return st, nil
}

// SaveSettings persists the operator-mutable gateway settings.
func (s *SettingsServiceImpl) SaveSettings(ctx context.Context, in *domain.GatewaySettings) (*domain.GatewaySettings, error) {
	if _, err := s.registry.Get(in.Gateway); err != nil {
		return nil, err
	}
	if in.DisplayName == "" {
		in.DisplayName = in.Gateway
	}
	in.UpdatedAt = time.Now().UTC()
	if err := s.settingsRepo.Upsert(ctx, in); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save settings: %w", err))
	}
	return in, nil
}

// TestGateway checks provider reachability with a lookup for a transaction
// that cannot exist. A not-found answer proves credentials and connectivity;
// anything retryable or auth-shaped surfaces as the underlying error.
func (s *SettingsServiceImpl) TestGateway(ctx context.Context, gateway string) error {
	adapter, err := s.registry.Get(gateway)
	if err != nil {
		return err
	}

	checkCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	_, err = adapter.CheckTransactionStatus(checkCtx, "connectivity-check-0")
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == "REC_001" {
			return nil
		}
		return err
	}
	return nil
}
