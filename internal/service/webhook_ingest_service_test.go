package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/internal/core/ports/mocks"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ingestTestDeps struct {
	svc          *WebhookIngestServiceImpl
	registry     *mocks.MockGatewayRegistry
	adapter      *mocks.MockGatewayAdapter
	webhookRepo  *mocks.MockWebhookRepository
	settingsRepo *mocks.MockSettingsRepository
	dedup        *mocks.MockDedupCache
	reconciler   *mocks.MockReconciliationService
	orderRepo    *mocks.MockOrderRepository
	ctrl         *gomock.Controller
}

func setupIngestService(t *testing.T) *ingestTestDeps {
	ctrl := gomock.NewController(t)
	d := &ingestTestDeps{
		registry:     mocks.NewMockGatewayRegistry(ctrl),
		adapter:      mocks.NewMockGatewayAdapter(ctrl),
		webhookRepo:  mocks.NewMockWebhookRepository(ctrl),
		settingsRepo: mocks.NewMockSettingsRepository(ctrl),
		dedup:        mocks.NewMockDedupCache(ctrl),
		reconciler:   mocks.NewMockReconciliationService(ctrl),
		orderRepo:    mocks.NewMockOrderRepository(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewWebhookIngestService(d.registry, d.webhookRepo, d.settingsRepo, d.dedup, d.reconciler, d.orderRepo, zerolog.Nop())
	return d
}

func TestWebhookIngest_AppliesStatusFromPayload(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"txn_id":"PP-42","payment_status":"Completed"}`)

	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "paypal").Return(&domain.GatewaySettings{Gateway: "paypal", Active: true}, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		RawStatus:     "Completed",
		Payload:       map[string]string{"payment_status": "Completed"},
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "paypal", gomock.Any(), 24*time.Hour).Return(true, nil)
	d.adapter.EXPECT().Name().Return("paypal")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, "paypal", in.Gateway)
			assert.Equal(t, "PP-42", in.ExternalTransactionID)
			assert.Equal(t, "Completed", in.RawStatus)
			return &ports.ReconcileResult{
				Applied:        true,
				PreviousStatus: domain.TransactionStatusPending,
				NewStatus:      domain.TransactionStatusApproved,
			}, nil
		})
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), true, "status updated pending -> approved").Return(nil)

	result, err := d.svc.Ingest(ctx, "paypal", payload, http.Header{})

	require.NoError(t, err)
	require.NotNil(t, result.Reconcile)
	assert.True(t, result.Reconcile.Applied)
}

func TestWebhookIngest_FetchesStatusWhenPayloadCarriesNone(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"type":"payment","data":{"id":"MP-77"}}`)

	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "mercadopago").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "payment",
		TransactionID: "MP-77",
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "mercadopago", gomock.Any(), 24*time.Hour).Return(true, nil)
	// Notification carries no status: the adapter is asked for the current one.
	d.adapter.EXPECT().CheckTransactionStatus(gomock.Any(), "MP-77").Return(&ports.StatusResult{
		Status:    domain.TransactionStatusApproved,
		RawStatus: "approved",
		Raw:       map[string]string{"status": "approved"},
	}, nil)
	d.adapter.EXPECT().Name().Return("mercadopago")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, "approved", in.RawStatus)
			return &ports.ReconcileResult{
				Applied:        true,
				PreviousStatus: domain.TransactionStatusPending,
				NewStatus:      domain.TransactionStatusApproved,
			}, nil
		})
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), true, gomock.Any()).Return(nil)

	result, err := d.svc.Ingest(ctx, "mercadopago", payload, http.Header{})

	require.NoError(t, err)
	require.NotNil(t, result.Reconcile)
}

func TestWebhookIngest_RejectsInvalidSignature(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"data":{"id":"MP-77"}}`)

	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "mercadopago").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(false)
	// The rejected delivery still lands in the log.
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Webhook) error {
			assert.Equal(t, "unverified", w.EventType)
			assert.False(t, w.Success)
			return nil
		})

	result, err := d.svc.Ingest(ctx, "mercadopago", payload, http.Header{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SEC_001", appErr.Code)
	require.NotNil(t, result.Webhook)
	assert.Nil(t, result.Reconcile)
}

func TestWebhookIngest_DisabledGatewayLogsWithoutProcessing(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"data":{"id":"MP-77"}}`)

	d.registry.EXPECT().Get("mercadopago").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "mercadopago").Return(&domain.GatewaySettings{Gateway: "mercadopago", Active: false}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Webhook) error {
			assert.Equal(t, "gateway disabled", w.ProcessResult)
			return nil
		})

	result, err := d.svc.Ingest(ctx, "mercadopago", payload, http.Header{})

	require.NoError(t, err)
	assert.Nil(t, result.Reconcile)
}

func TestWebhookIngest_DuplicateDeliveryShortCircuits(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"txn_id":"PP-42","payment_status":"Completed"}`)

	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "paypal").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		RawStatus:     "Completed",
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "paypal", gomock.Any(), 24*time.Hour).Return(false, nil)
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), true, "duplicate delivery ignored").Return(nil)

	result, err := d.svc.Ingest(ctx, "paypal", payload, http.Header{})

	require.NoError(t, err)
	assert.Nil(t, result.Reconcile)
}

func TestWebhookIngest_DedupFailureDegradesToProcessing(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"txn_id":"PP-42","payment_status":"Completed"}`)

	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "paypal").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		RawStatus:     "Completed",
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "paypal", gomock.Any(), 24*time.Hour).Return(false, assert.AnError)
	d.adapter.EXPECT().Name().Return("paypal")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).Return(&ports.ReconcileResult{
		PreviousStatus: domain.TransactionStatusApproved,
		NewStatus:      domain.TransactionStatusApproved,
	}, nil)
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), true, "no change, status remains approved").Return(nil)

	_, err := d.svc.Ingest(ctx, "paypal", payload, http.Header{})
	require.NoError(t, err)
}

func TestWebhookIngest_ResolvesOrderNumberFallback(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"invoice":"TAV-2025-0042","payment_status":"Completed"}`)

	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "paypal").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		OrderNumber:   "TAV-2025-0042",
		RawStatus:     "Completed",
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "paypal", gomock.Any(), 24*time.Hour).Return(true, nil)
	d.orderRepo.EXPECT().GetByNumber(ctx, "TAV-2025-0042").Return(&domain.Order{ID: 4242, OrderNumber: "TAV-2025-0042"}, nil)
	d.adapter.EXPECT().Name().Return("paypal")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, int64(4242), in.OrderID)
			return &ports.ReconcileResult{Applied: true, NewStatus: domain.TransactionStatusApproved}, nil
		})
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), true, gomock.Any()).Return(nil)

	_, err := d.svc.Ingest(ctx, "paypal", payload, http.Header{})
	require.NoError(t, err)
}

func TestWebhookIngest_ReconcileFailureRecordedInLog(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	payload := []byte(`{"txn_id":"PP-42","payment_status":"Completed"}`)

	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.settingsRepo.EXPECT().Get(ctx, "paypal").Return(nil, nil)
	d.adapter.EXPECT().VerifyWebhookSignature(payload, gomock.Any()).Return(true)
	d.adapter.EXPECT().ParseWebhook(payload).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		RawStatus:     "Completed",
	}, nil)
	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.dedup.EXPECT().CheckAndSet(ctx, "paypal", gomock.Any(), 24*time.Hour).Return(true, nil)
	d.adapter.EXPECT().Name().Return("paypal")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).Return(nil, apperror.ErrTransactionNotFound("PP-42"))
	d.webhookRepo.EXPECT().SetOutcome(ctx, gomock.Any(), false, gomock.Any()).Return(nil)

	_, err := d.svc.Ingest(ctx, "paypal", payload, http.Header{})
	require.Error(t, err)
}

func TestWebhookIngest_Reprocess(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	webhookID := uuid.New()
	stored := &domain.Webhook{
		ID:          webhookID,
		Gateway:     "paypal",
		EventType:   "ipn",
		RequestData: `{"txn_id":"PP-42","payment_status":"Completed"}`,
	}

	d.webhookRepo.EXPECT().GetByID(ctx, webhookID).Return(stored, nil)
	d.registry.EXPECT().Get("paypal").Return(d.adapter, nil)
	d.adapter.EXPECT().ParseWebhook([]byte(stored.RequestData)).Return(&ports.WebhookEvent{
		EventType:     "ipn",
		TransactionID: "PP-42",
		RawStatus:     "Completed",
	}, nil)
	d.adapter.EXPECT().Name().Return("paypal")
	d.reconciler.EXPECT().Reconcile(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in ports.ReconcileInput) (*ports.ReconcileResult, error) {
			assert.Equal(t, "reprocessed by carla", in.Note)
			return &ports.ReconcileResult{
				Applied:        true,
				PreviousStatus: domain.TransactionStatusPending,
				NewStatus:      domain.TransactionStatusApproved,
			}, nil
		})
	d.webhookRepo.EXPECT().SetOutcome(ctx, webhookID, true, "status updated pending -> approved").Return(nil)

	result, err := d.svc.Reprocess(ctx, webhookID, "carla")

	require.NoError(t, err)
	require.NotNil(t, result.Reconcile)
	assert.True(t, result.Reconcile.Applied)
}

func TestWebhookIngest_ReprocessUnknownWebhook(t *testing.T) {
	d := setupIngestService(t)
	defer d.ctrl.Finish()

	webhookID := uuid.New()
	d.webhookRepo.EXPECT().GetByID(gomock.Any(), webhookID).Return(nil, nil)

	_, err := d.svc.Reprocess(context.Background(), webhookID, "carla")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REC_001", appErr.Code)
}
