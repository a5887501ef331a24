package service

import (
	"context"
	"testing"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/internal/core/ports/mocks"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminTestDeps struct {
	svc         *PaymentAdminServiceImpl
	registry    *mocks.MockGatewayRegistry
	adapter     *mocks.MockGatewayAdapter
	txRepo      *mocks.MockTransactionRepository
	historyRepo *mocks.MockHistoryRepository
	webhookRepo *mocks.MockWebhookRepository
	refundRepo  *mocks.MockRefundRepository
	orderRepo   *mocks.MockOrderRepository
	attemptRepo *mocks.MockAttemptRepository
	transactor  *mocks.MockDBTransactor
	reconciler  *mocks.MockReconciliationService
	ctrl        *gomock.Controller
}

func setupAdminService(t *testing.T) *adminTestDeps {
	ctrl := gomock.NewController(t)
	d := &adminTestDeps{
		registry:    mocks.NewMockGatewayRegistry(ctrl),
		adapter:     mocks.NewMockGatewayAdapter(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		historyRepo: mocks.NewMockHistoryRepository(ctrl),
		webhookRepo: mocks.NewMockWebhookRepository(ctrl),
		refundRepo:  mocks.NewMockRefundRepository(ctrl),
		orderRepo:   mocks.NewMockOrderRepository(ctrl),
		attemptRepo: mocks.NewMockAttemptRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		reconciler:  mocks.NewMockReconciliationService(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewPaymentAdminService(
		d.registry, d.txRepo, d.historyRepo, d.webhookRepo, d.refundRepo,
		d.orderRepo, d.attemptRepo, d.transactor, d.reconciler, zerolog.Nop(),
	)
	return d
}

func approvedTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:                    uuid.New(),
		OrderID:               1001,
		GatewayName:           "mercadopago",
		ExternalTransactionID: "MP-555",
		Amount:                decimal.NewFromFloat(200.00),
		Currency:              "BRL",
		Status:                domain.TransactionStatusApproved,
	}
}

func TestAdminService_CheckTransactionStatus(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusPending

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().CheckTransactionStatus(gomock.Any(), "MP-555").Return(&ports.StatusResult{
		Status:    domain.TransactionStatusApproved,
		RawStatus: "approved",
	}, nil)
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, "approved", in.RawStatus)
			assert.Equal(t, "manual status check", in.Note)
			assert.Equal(t, "carla", in.Actor)
			return &ports.ReconcileResult{Applied: true, NewStatus: domain.TransactionStatusApproved}, nil
		})

	result, err := d.svc.CheckTransactionStatus(ctx, txn.ID, "carla")

	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestAdminService_PartialRefundKeepsTransactionApproved(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()
	amount := decimal.NewFromFloat(50.00)

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Any()).Return(&ports.RefundResult{
		RefundID: "RF-1",
		Status:   domain.RefundStatusCompleted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(txn, nil)
	d.refundRepo.EXPECT().SumActive(ctx, tx, txn.ID).Return("0", nil)
	d.refundRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ interface{}, r *domain.Refund) error {
			assert.True(t, r.Amount.Equal(amount))
			assert.Equal(t, "RF-1", r.RefundID)
			return nil
		})
	// Partial: no status update, just a history trace.
	d.historyRepo.EXPECT().Append(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ interface{}, entry *domain.TransactionHistory) error {
			assert.Equal(t, domain.TransactionStatusApproved, entry.Status)
			assert.Contains(t, entry.Note, "partial refund 50")
			return nil
		})

	refund, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Amount:        &amount,
		Reason:        "damaged part",
		Actor:         "carla",
	})

	require.NoError(t, err)
	assert.Equal(t, "RF-1", refund.RefundID)
}

func TestAdminService_FullRefundTransitionsTransaction(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	// Nil amount means full refund at the gateway.
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Nil()).Return(&ports.RefundResult{
		RefundID: "RF-2",
		Status:   domain.RefundStatusCompleted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(txn, nil)
	d.refundRepo.EXPECT().SumActive(ctx, tx, txn.ID).Return("0", nil)
	d.refundRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().UpdateStatus(ctx, tx, txn.ID, domain.TransactionStatusRefunded).Return(nil)
	d.historyRepo.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.orderRepo.EXPECT().SyncPaymentStatus(ctx, tx, int64(1001), domain.OrderStatusRefunded, domain.TransactionStatusRefunded).Return(nil)

	refund, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Reason:        "order cancelled after payment",
		Actor:         "carla",
	})

	require.NoError(t, err)
	assert.True(t, refund.Amount.Equal(txn.Amount))
}

func TestAdminService_RefundCapEnforced(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()
	amount := decimal.NewFromFloat(80.00)

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Any()).Return(&ports.RefundResult{
		RefundID: "RF-3",
		Status:   domain.RefundStatusCompleted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(txn, nil)
	// 150 already refunded; 80 more would exceed the 200 original.
	d.refundRepo.EXPECT().SumActive(ctx, tx, txn.ID).Return("150.00", nil)

	_, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Amount:        &amount,
		Reason:        "second partial",
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_001", appErr.Code)
}

func TestAdminService_PendingRefundStaysApprovedUntilSettled(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	// The gateway accepts the full refund but reports it as still pending.
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Nil()).Return(&ports.RefundResult{
		RefundID: "RF-5",
		Status:   domain.RefundStatusPending,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(txn, nil)
	d.refundRepo.EXPECT().SumActive(ctx, tx, txn.ID).Return("0", nil)
	d.refundRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ interface{}, r *domain.Refund) error {
			assert.Equal(t, domain.RefundStatusPending, r.Status)
			return nil
		})
	// No UpdateStatus: a pending refund must not settle the transaction.
	d.historyRepo.EXPECT().Append(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ interface{}, entry *domain.TransactionHistory) error {
			assert.Equal(t, domain.TransactionStatusApproved, entry.Status)
			assert.Contains(t, entry.Note, "pending at gateway")
			return nil
		})

	refund, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Reason:        "buyer dispute",
		Actor:         "carla",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RefundStatusPending, refund.Status)
}

func TestAdminService_PendingRefundCountsTowardCap(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()
	amount := decimal.NewFromFloat(100.00)

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Any()).Return(&ports.RefundResult{
		RefundID: "RF-6",
		Status:   domain.RefundStatusCompleted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(txn, nil)
	// 120 is awaiting settlement at the gateway. It still holds the balance,
	// so 100 more on a 200 transaction is over the cap.
	d.refundRepo.EXPECT().SumActive(ctx, tx, txn.ID).Return("120.00", nil)

	_, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Amount:        &amount,
		Reason:        "second refund while first is unsettled",
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_001", appErr.Code)
}

func TestAdminService_RefundRejectsNonRefundableStatus(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusPending

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Reason:        "too early",
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_003", appErr.Code)
}

func TestAdminService_RefundRejectsAlreadyRefunded(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	txn := approvedTransaction()
	locked := approvedTransaction()
	locked.Status = domain.TransactionStatusRefunded

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().Refund(gomock.Any(), "MP-555", gomock.Nil()).Return(&ports.RefundResult{
		RefundID: "RF-4",
		Status:   domain.RefundStatusCompleted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// Another operator finished the refund between our check and the lock.
	d.txRepo.EXPECT().GetByExternalIDForUpdate(ctx, tx, "mercadopago", "MP-555").Return(locked, nil)

	_, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Reason:        "duplicate click",
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_002", appErr.Code)
}

func TestAdminService_RefundRejectsInvalidAmount(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	zero := decimal.Zero

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.Refund(ctx, ports.RefundInput{
		TransactionID: txn.ID,
		Amount:        &zero,
		Reason:        "typo",
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PAY_004", appErr.Code)
}

func TestAdminService_Cancel(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusPending

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.adapter.EXPECT().Cancel(gomock.Any(), "MP-555").Return(&ports.CancelResult{
		Status: domain.TransactionStatusCancelled,
	}, nil)
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, domain.TransactionStatusCancelled, in.Status)
			assert.Contains(t, in.Note, "customer gave up")
			return &ports.ReconcileResult{Applied: true, NewStatus: domain.TransactionStatusCancelled}, nil
		})

	result, err := d.svc.Cancel(ctx, txn.ID, "customer gave up", "carla")

	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestAdminService_CancelRejectsSettledTransaction(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusRefunded

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.Cancel(ctx, txn.ID, "too late", "carla")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GW_004", appErr.Code)
}

func TestAdminService_ForceStatusRequiresReason(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.ForceStatus(context.Background(), ports.ForceStatusInput{
		TransactionID: uuid.New(),
		Status:        domain.TransactionStatusApproved,
		Actor:         "carla",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_002", appErr.Code)
}

func TestAdminService_ForceStatusDelegatesWithForceFlag(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusFailed

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.True(t, in.Force)
			assert.Equal(t, domain.TransactionStatusApproved, in.Status)
			assert.Equal(t, "paid via bank transfer", in.Reason)
			return &ports.ReconcileResult{Applied: true, NewStatus: domain.TransactionStatusApproved}, nil
		})

	result, err := d.svc.ForceStatus(ctx, ports.ForceStatusInput{
		TransactionID: txn.ID,
		Status:        domain.TransactionStatusApproved,
		Reason:        "paid via bank transfer",
		Actor:         "carla",
	})

	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestAdminService_UpdateOrderPaymentStatus(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	txn.Status = domain.TransactionStatusPending
	orderID := int64(1001)

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(&domain.Order{ID: orderID}, nil)
	d.txRepo.EXPECT().List(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
			require.NotNil(t, params.OrderID)
			assert.Equal(t, orderID, *params.OrderID)
			return []domain.Transaction{*txn}, 1, nil
		})
	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).Return(&ports.ReconcileResult{Applied: true}, nil)

	err := d.svc.UpdateOrderPaymentStatus(ctx, orderID, domain.TransactionStatusApproved, "confirmed manually", "carla")
	require.NoError(t, err)
}

func TestAdminService_UpdateOrderPaymentStatus_OrderNotFound(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.orderRepo.EXPECT().GetByID(ctx, int64(9999)).Return(nil, nil)

	err := d.svc.UpdateOrderPaymentStatus(ctx, 9999, domain.TransactionStatusApproved, "reason", "carla")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REC_003", appErr.Code)
}

func TestAdminService_GetTransactionDetail(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.historyRepo.EXPECT().ListByTransaction(ctx, txn.ID).Return([]domain.TransactionHistory{
		{TransactionID: txn.ID, Status: domain.TransactionStatusPending},
		{TransactionID: txn.ID, Status: domain.TransactionStatusApproved},
	}, nil)
	d.refundRepo.EXPECT().ListByTransaction(ctx, txn.ID).Return(nil, nil)
	d.orderRepo.EXPECT().GetByID(ctx, int64(1001)).Return(&domain.Order{ID: 1001}, nil)

	detail, err := d.svc.GetTransactionDetail(ctx, txn.ID)

	require.NoError(t, err)
	assert.Len(t, detail.History, 2)
	assert.Equal(t, domain.BadgeFor(domain.TransactionStatusApproved), detail.Badge)
	require.NotNil(t, detail.Order)
}

func TestAdminService_GetWebhookData_ResolvesTransaction(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := approvedTransaction()
	webhookID := uuid.New()
	externalID := txn.ExternalTransactionID

	d.webhookRepo.EXPECT().GetByID(ctx, webhookID).Return(&domain.Webhook{
		ID:            webhookID,
		Gateway:       "mercadopago",
		EventType:     "payment.updated",
		TransactionID: &externalID,
		Success:       true,
	}, nil)
	d.txRepo.EXPECT().GetByExternalID(ctx, "mercadopago", externalID).Return(txn, nil)

	detail, err := d.svc.GetWebhookData(ctx, webhookID)

	require.NoError(t, err)
	require.NotNil(t, detail.Transaction)
	assert.Equal(t, txn.ID, detail.Transaction.ID)
}

func TestAdminService_GetWebhookData_UnresolvedDelivery(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	webhookID := uuid.New()

	// No transaction reference in the payload: the record stands alone.
	d.webhookRepo.EXPECT().GetByID(ctx, webhookID).Return(&domain.Webhook{
		ID:        webhookID,
		Gateway:   "paypal",
		EventType: "PAYMENT.CAPTURE.COMPLETED",
	}, nil)

	detail, err := d.svc.GetWebhookData(ctx, webhookID)

	require.NoError(t, err)
	require.NotNil(t, detail.Webhook)
	assert.Nil(t, detail.Transaction)
}

func TestAdminService_GetDashboardStats(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stats := &ports.TransactionStats{TotalTransactions: 10, Approved: 7}

	d.txRepo.EXPECT().GetStats(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, periodStart *int64) (*ports.TransactionStats, error) {
			require.NotNil(t, periodStart)
			return stats, nil
		})

	got, err := d.svc.GetDashboardStats(ctx, "7d")

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.TotalTransactions)
}

func TestAdminService_GetDashboardStats_AllTime(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.txRepo.EXPECT().GetStats(ctx, gomock.Nil()).Return(&ports.TransactionStats{}, nil)

	_, err := d.svc.GetDashboardStats(ctx, "")
	require.NoError(t, err)
}

func TestAdminService_GetDashboardStats_UnknownPeriod(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.GetDashboardStats(context.Background(), "last-century")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_002", appErr.Code)
}
