package service

import (
	"context"
	"fmt"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ReconcileServiceImpl implements ports.ReconciliationService. All status
// changes in the system funnel through Reconcile: webhook deliveries, manual
// status checks, refunds, cancellations and operator overrides. Transaction
// update, history append and order sync commit atomically under a per-row
// lock, so concurrent deliveries for the same transaction serialize.
type ReconcileServiceImpl struct {
	registry    ports.GatewayRegistry
	txRepo      ports.TransactionRepository
	historyRepo ports.HistoryRepository
	orderRepo   ports.OrderRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewReconcileService creates a new ReconcileServiceImpl.
func NewReconcileService(
	registry ports.GatewayRegistry,
	txRepo ports.TransactionRepository,
	historyRepo ports.HistoryRepository,
	orderRepo ports.OrderRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *ReconcileServiceImpl {
	return &ReconcileServiceImpl{
		registry:    registry,
		txRepo:      txRepo,
		historyRepo: historyRepo,
		orderRepo:   orderRepo,
		transactor:  transactor,
		log:         log,
	}
}

// Reconcile applies a reported status to a transaction.
func (s *ReconcileServiceImpl) Reconcile(ctx context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
	if in.ExternalTransactionID == "" && in.OrderID == 0 {
		return nil, apperror.Validation("external transaction id or order id is required")
	}
	if in.Force && (in.Actor == "" || in.Reason == "") {
		return nil, apperror.Validation("forced status changes require actor and reason")
	}

	newStatus, err := s.resolveStatus(in)
	if err != nil {
		return nil, err
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get transaction. External id is the primary key into the system;
	// order id is the fallback when the callback carries none.
	var txn *domain.Transaction
	if in.ExternalTransactionID != "" {
		txn, err = s.txRepo.GetByExternalIDForUpdate(ctx, dbTx, in.Gateway, in.ExternalTransactionID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
		}
	}
	if txn == nil && in.OrderID != 0 {
		txn, err = s.txRepo.GetByOrderForUpdate(ctx, dbTx, in.OrderID, in.Gateway)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock transaction by order: %w", err))
		}
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound(in.ExternalTransactionID)
	}

	prev := txn.Status
	result := &ports.ReconcileResult{
		PreviousStatus: prev,
		NewStatus:      prev,
		TransactionID:  txn.ID,
	}

	switch {
	case prev == newStatus:
		// Same-status replay: audit-only no-op.
		if err := s.appendHistory(ctx, dbTx, txn.ID, prev, in, "status unchanged: "+in.Note); err != nil {
			return nil, err
		}

	case prev.IsTerminal() && !in.Force:
		// Terminal states accept no automatic transitions; late or replayed
		// deliveries are logged and ignored.
		note := fmt.Sprintf("ignored %s: transaction already %s", newStatus, prev)
		if in.Note != "" {
			note += " (" + in.Note + ")"
		}
		if err := s.appendHistory(ctx, dbTx, txn.ID, prev, in, note); err != nil {
			return nil, err
		}

	case !in.Force && !prev.CanTransitionTo(newStatus):
		return nil, apperror.ErrIllegalTransition(string(prev), string(newStatus))

	default:
		if err := s.applyTransition(ctx, dbTx, txn, newStatus, in); err != nil {
			return nil, err
		}
		result.Applied = true
		result.NewStatus = newStatus
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("gateway", in.Gateway).
		Str("previous", string(prev)).
		Str("new", string(result.NewStatus)).
		Bool("applied", result.Applied).
		Bool("force", in.Force).
		Msg("transaction reconciled")

	return result, nil
}

// resolveStatus turns the input into a canonical status: an explicit
// canonical status wins, otherwise the gateway's translation table decides.
func (s *ReconcileServiceImpl) resolveStatus(in ports.ReconcileInput) (domain.TransactionStatus, error) {
	if in.Status != "" {
		if !in.Status.IsValid() {
			return "", apperror.Validation(fmt.Sprintf("unknown status %q", in.Status))
		}
		return in.Status, nil
	}

	adapter, err := s.registry.Get(in.Gateway)
	if err != nil {
		return "", err
	}
	return adapter.TranslateStatus(in.RawStatus)
}

// applyTransition writes the status change, its history entry and the order
// projection inside the caller's database transaction.
func (s *ReconcileServiceImpl) applyTransition(ctx context.Context, dbTx pgx.Tx, txn *domain.Transaction, newStatus domain.TransactionStatus, in ports.ReconcileInput) error {
	if err := s.txRepo.UpdateStatus(ctx, dbTx, txn.ID, newStatus); err != nil {
		return apperror.InternalError(fmt.Errorf("update status: %w", err))
	}

	note := in.Note
	if in.Force {
		note = "forced: " + in.Reason
	}
	if err := s.appendHistory(ctx, dbTx, txn.ID, newStatus, in, note); err != nil {
		return err
	}

	if txn.OrderID != 0 {
		orderStatus := domain.OrderStatusForPayment(newStatus)
		if err := s.orderRepo.SyncPaymentStatus(ctx, dbTx, txn.OrderID, orderStatus, newStatus); err != nil {
			return apperror.InternalError(fmt.Errorf("sync order: %w", err))
		}
	}
	return nil
}

func (s *ReconcileServiceImpl) appendHistory(ctx context.Context, dbTx pgx.Tx, txID uuid.UUID, status domain.TransactionStatus, in ports.ReconcileInput, note string) error {
	entry := &domain.TransactionHistory{
		ID:            uuid.New(),
		TransactionID: txID,
		Status:        status,
		Snapshot:      domain.RedactSensitive(in.Payload),
		Note:          note,
		Actor:         in.Actor,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.historyRepo.Append(ctx, dbTx, entry); err != nil {
		return apperror.InternalError(fmt.Errorf("append history: %w", err))
	}
	return nil
}
