package service

import (
	"context"
	"fmt"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentAdminServiceImpl implements ports.PaymentAdminService. Every action
// that changes status re-enters the reconciliation engine so history logging
// and order sync cannot be bypassed. Gateway calls run outside database
// locks, bounded by a timeout.
type PaymentAdminServiceImpl struct {
	registry    ports.GatewayRegistry
	txRepo      ports.TransactionRepository
	historyRepo ports.HistoryRepository
	webhookRepo ports.WebhookRepository
	refundRepo  ports.RefundRepository
	orderRepo   ports.OrderRepository
	attemptRepo ports.AttemptRepository
	transactor  ports.DBTransactor
	reconciler  ports.ReconciliationService
	log         zerolog.Logger
}

// NewPaymentAdminService creates a new PaymentAdminServiceImpl.
func NewPaymentAdminService(
	registry ports.GatewayRegistry,
	txRepo ports.TransactionRepository,
	historyRepo ports.HistoryRepository,
	webhookRepo ports.WebhookRepository,
	refundRepo ports.RefundRepository,
	orderRepo ports.OrderRepository,
	attemptRepo ports.AttemptRepository,
	transactor ports.DBTransactor,
	reconciler ports.ReconciliationService,
	log zerolog.Logger,
) *PaymentAdminServiceImpl {
	return &PaymentAdminServiceImpl{
		registry:    registry,
		txRepo:      txRepo,
		historyRepo: historyRepo,
		webhookRepo: webhookRepo,
		refundRepo:  refundRepo,
		orderRepo:   orderRepo,
		attemptRepo: attemptRepo,
		transactor:  transactor,
		reconciler:  reconciler,
		log:         log,
	}
}

// CheckTransactionStatus pulls the authoritative status from the gateway and
// reconciles it.
func (s *PaymentAdminServiceImpl) CheckTransactionStatus(ctx context.Context, transactionID uuid.UUID, actor string) (*ports.ReconcileResult, error) {
	txn, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	adapter, err := s.registry.Get(txn.GatewayName)
	if err != nil {
		return nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	status, err := adapter.CheckTransactionStatus(checkCtx, txn.ExternalTransactionID)
	if err != nil {
		return nil, err
	}

	return s.reconciler.Reconcile(ctx, ports.ReconcileInput{
		Gateway:               txn.GatewayName,
		ExternalTransactionID: txn.ExternalTransactionID,
		RawStatus:             status.RawStatus,
		Payload:               status.Raw,
		Note:                  "manual status check",
		Actor:                 actor,
	})
}

// CheckOrderTransactionStatus checks the latest transaction of an order.
func (s *PaymentAdminServiceImpl) CheckOrderTransactionStatus(ctx context.Context, orderID int64, actor string) (*ports.ReconcileResult, error) {
	txn, err := s.latestForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.CheckTransactionStatus(ctx, txn.ID, actor)
}

// Refund issues a full or partial refund. The cumulative non-failed amount
// (pending refunds included) may never exceed the original; a refund that
// completes the full amount also transitions the transaction to refunded.
func (s *PaymentAdminServiceImpl) Refund(ctx context.Context, in ports.RefundInput) (*domain.Refund, error) {
	txn, err := s.getTransaction(ctx, in.TransactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsRefundable() {
		return nil, apperror.ErrNotRefundable(string(txn.Status))
	}

	amount := txn.Amount
	if in.Amount != nil {
		if in.Amount.IsNegative() || in.Amount.IsZero() {
			return nil, apperror.ErrInvalidAmount()
		}
		if in.Amount.GreaterThan(txn.Amount) {
			return nil, apperror.ErrAmountExceedsBalance()
		}
		amount = *in.Amount
	}

	// Gateway call first, outside any lock. The provider is the source of
	// truth for over-refunds too; our cap check below guards the local books.
	refundCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	adapter, err := s.registry.Get(txn.GatewayName)
	if err != nil {
		return nil, err
	}
	gwAmount := &amount
	if in.Amount == nil {
		gwAmount = nil // full refund
	}
	gwResult, err := adapter.Refund(refundCtx, txn.ExternalTransactionID, gwAmount)
	if err != nil {
		return nil, err
	}

	// Record the refund and, when cumulative refunds reach the original
	// amount, transition the transaction, all in one database transaction.
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.txRepo.GetByExternalIDForUpdate(ctx, dbTx, txn.GatewayName, txn.ExternalTransactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
	}
	if locked == nil {
		return nil, apperror.ErrTransactionNotFound(txn.ExternalTransactionID)
	}
	if locked.Status == domain.TransactionStatusRefunded {
		return nil, apperror.ErrAlreadyRefunded()
	}

	sumStr, err := s.refundRepo.SumActive(ctx, dbTx, locked.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum refunds: %w", err))
	}
	refundedSoFar, err := decimal.NewFromString(sumStr)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("parse refund sum: %w", err))
	}
	if refundedSoFar.Add(amount).GreaterThan(locked.Amount) {
		return nil, apperror.ErrAmountExceedsBalance()
	}

	now := time.Now().UTC()
	refund := &domain.Refund{
		ID:            uuid.New(),
		TransactionID: locked.ID,
		RefundID:      gwResult.RefundID,
		Amount:        amount,
		Status:        gwResult.Status,
		Reason:        in.Reason,
		CreatedAt:     now,
	}
	if err := s.refundRepo.Create(ctx, dbTx, refund); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create refund: %w", err))
	}

	fullyRefunded := gwResult.Status == domain.RefundStatusCompleted &&
		refundedSoFar.Add(amount).Equal(locked.Amount)
	if fullyRefunded {
		if err := s.txRepo.UpdateStatus(ctx, dbTx, locked.ID, domain.TransactionStatusRefunded); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("mark refunded: %w", err))
		}
		entry := &domain.TransactionHistory{
			ID:            uuid.New(),
			TransactionID: locked.ID,
			Status:        domain.TransactionStatusRefunded,
			Note:          "refund: " + in.Reason,
			Actor:         in.Actor,
			CreatedAt:     now,
		}
		if err := s.historyRepo.Append(ctx, dbTx, entry); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("append history: %w", err))
		}
		if locked.OrderID != 0 {
			if err := s.orderRepo.SyncPaymentStatus(ctx, dbTx, locked.OrderID,
				domain.OrderStatusRefunded, domain.TransactionStatusRefunded); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("sync order: %w", err))
			}
		}
	} else {
		// Partial or still-pending refund: the transaction stays approved, the
		// refund row and a history entry carry the trace.
		note := fmt.Sprintf("partial refund %s: %s", amount.String(), in.Reason)
		if gwResult.Status == domain.RefundStatusPending {
			note = fmt.Sprintf("refund %s pending at gateway: %s", amount.String(), in.Reason)
		}
		entry := &domain.TransactionHistory{
			ID:            uuid.New(),
			TransactionID: locked.ID,
			Status:        locked.Status,
			Note:          note,
			Actor:         in.Actor,
			CreatedAt:     now,
		}
		if err := s.historyRepo.Append(ctx, dbTx, entry); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("append history: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", locked.ID.String()).
		Str("refund_id", refund.ID.String()).
		Str("amount", amount.String()).
		Bool("full", fullyRefunded).
		Str("actor", in.Actor).
		Msg("refund processed")

	return refund, nil
}

// Cancel cancels a transaction at the gateway and reconciles the result.
func (s *PaymentAdminServiceImpl) Cancel(ctx context.Context, transactionID uuid.UUID, reason, actor string) (*ports.ReconcileResult, error) {
	txn, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsCancelable() {
		return nil, apperror.ErrNotCancelable(txn.ExternalTransactionID)
	}

	adapter, err := s.registry.Get(txn.GatewayName)
	if err != nil {
		return nil, err
	}

	cancelCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	gwResult, err := adapter.Cancel(cancelCtx, txn.ExternalTransactionID)
	if err != nil {
		return nil, err
	}

	return s.reconciler.Reconcile(ctx, ports.ReconcileInput{
		Gateway:               txn.GatewayName,
		ExternalTransactionID: txn.ExternalTransactionID,
		Status:                gwResult.Status,
		Note:                  "cancelled: " + reason,
		Actor:                 actor,
	})
}

// ForceStatus overrides the transition table. Reason is mandatory and the
// override is permanently attributed in the history log.
func (s *PaymentAdminServiceImpl) ForceStatus(ctx context.Context, in ports.ForceStatusInput) (*ports.ReconcileResult, error) {
	if in.Reason == "" {
		return nil, apperror.Validation("a reason is required to force a status")
	}
	txn, err := s.getTransaction(ctx, in.TransactionID)
	if err != nil {
		return nil, err
	}

	return s.reconciler.Reconcile(ctx, ports.ReconcileInput{
		Gateway:               txn.GatewayName,
		ExternalTransactionID: txn.ExternalTransactionID,
		Status:                in.Status,
		Force:                 true,
		Actor:                 in.Actor,
		Reason:                in.Reason,
	})
}

// UpdateOrderPaymentStatus forces a status on the latest transaction of an
// order.
func (s *PaymentAdminServiceImpl) UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status domain.TransactionStatus, reason, actor string) error {
	txn, err := s.latestForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	_, err = s.ForceStatus(ctx, ports.ForceStatusInput{
		TransactionID: txn.ID,
		Status:        status,
		Reason:        reason,
		Actor:         actor,
	})
	return err
}

// GetTransactionDetail aggregates the admin transaction view.
func (s *PaymentAdminServiceImpl) GetTransactionDetail(ctx context.Context, transactionID uuid.UUID) (*ports.TransactionDetail, error) {
	txn, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.ListByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list history: %w", err))
	}
	refunds, err := s.refundRepo.ListByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list refunds: %w", err))
	}

	var order *domain.Order
	if txn.OrderID != 0 {
		order, err = s.orderRepo.GetByID(ctx, txn.OrderID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("load order: %w", err))
		}
	}

	return &ports.TransactionDetail{
		Transaction: txn,
		Badge:       domain.BadgeFor(txn.Status),
		History:     history,
		Refunds:     refunds,
		Order:       order,
	}, nil
}

// GetWebhookData returns one webhook record for the admin log detail view,
// together with the transaction the delivery resolved to when the payload
// carried an external transaction id.
func (s *PaymentAdminServiceImpl) GetWebhookData(ctx context.Context, webhookID uuid.UUID) (*ports.WebhookDetail, error) {
	w, err := s.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load webhook: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrTransactionNotFound(webhookID.String())
	}

	detail := &ports.WebhookDetail{Webhook: w}
	if w.TransactionID != nil && *w.TransactionID != "" {
		txn, err := s.txRepo.GetByExternalID(ctx, w.Gateway, *w.TransactionID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("resolve webhook transaction: %w", err))
		}
		// Unresolved deliveries keep a nil transaction; the record itself is
		// still shown.
		detail.Transaction = txn
	}
	return detail, nil
}

// GetAttemptData returns one payment attempt for the admin order view.
func (s *PaymentAdminServiceImpl) GetAttemptData(ctx context.Context, attemptID int64) (*domain.PaymentAttempt, error) {
	a, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load attempt: %w", err))
	}
	if a == nil {
		return nil, apperror.ErrTransactionNotFound(fmt.Sprintf("attempt %d", attemptID))
	}
	return a, nil
}

// ListTransactions lists transactions for the admin panel.
func (s *PaymentAdminServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	return s.txRepo.List(ctx, params)
}

// ListWebhooks lists webhook deliveries for the admin log.
func (s *PaymentAdminServiceImpl) ListWebhooks(ctx context.Context, params ports.WebhookListParams) ([]domain.Webhook, int64, error) {
	return s.webhookRepo.List(ctx, params)
}

// GetDashboardStats aggregates figures for the admin dashboard. Supported
// periods: "today", "7d", "30d" and "" for all time.
func (s *PaymentAdminServiceImpl) GetDashboardStats(ctx context.Context, period string) (*ports.TransactionStats, error) {
	var periodStart *int64
	now := time.Now()
	switch period {
	case "":
		// all time
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()
		periodStart = &start
	case "7d":
		start := now.AddDate(0, 0, -7).Unix()
		periodStart = &start
	case "30d":
		start := now.AddDate(0, 0, -30).Unix()
		periodStart = &start
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown period %q", period))
	}

	stats, err := s.txRepo.GetStats(ctx, periodStart)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get stats: %w", err))
	}
	return stats, nil
}

func (s *PaymentAdminServiceImpl) getTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound(id.String())
	}
	return txn, nil
}

func (s *PaymentAdminServiceImpl) latestForOrder(ctx context.Context, orderID int64) (*domain.Transaction, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound(orderID)
	}

	txns, _, err := s.txRepo.List(ctx, ports.TransactionListParams{
		OrderID:  &orderID,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	if len(txns) == 0 {
		return nil, apperror.ErrTransactionNotFound(fmt.Sprintf("order %d", orderID))
	}
	return &txns[0], nil
}
