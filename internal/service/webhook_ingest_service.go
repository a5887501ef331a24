package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	dedupTTL       = 24 * time.Hour
	gatewayTimeout = 10 * time.Second
)

// WebhookIngestServiceImpl implements ports.WebhookIngestService. Every
// delivery is recorded before processing, so the admin log shows rejected and
// failed callbacks too. Processing failures never bubble up as HTTP errors;
// the endpoints acknowledge 200 and the failure lands in the webhook log.
type WebhookIngestServiceImpl struct {
	registry     ports.GatewayRegistry
	webhookRepo  ports.WebhookRepository
	settingsRepo ports.SettingsRepository
	dedup        ports.DedupCache
	reconciler   ports.ReconciliationService
	orderRepo    ports.OrderRepository
	log          zerolog.Logger
}

// NewWebhookIngestService creates a new WebhookIngestServiceImpl.
func NewWebhookIngestService(
	registry ports.GatewayRegistry,
	webhookRepo ports.WebhookRepository,
	settingsRepo ports.SettingsRepository,
	dedup ports.DedupCache,
	reconciler ports.ReconciliationService,
	orderRepo ports.OrderRepository,
	log zerolog.Logger,
) *WebhookIngestServiceImpl {
	return &WebhookIngestServiceImpl{
		registry:     registry,
		webhookRepo:  webhookRepo,
		settingsRepo: settingsRepo,
		dedup:        dedup,
		reconciler:   reconciler,
		orderRepo:    orderRepo,
		log:          log,
	}
}

// Ingest verifies, records and dispatches one gateway callback.
func (s *WebhookIngestServiceImpl) Ingest(ctx context.Context, gateway string, rawPayload []byte, headers http.Header) (*ports.IngestResult, error) {
	adapter, err := s.registry.Get(gateway)
	if err != nil {
		return nil, err
	}

	// A disabled gateway still gets its deliveries logged; they are not
	// processed until an operator re-enables it and reprocesses.
	settings, err := s.settingsRepo.Get(ctx, gateway)
	if err != nil {
		s.log.Warn().Err(err).Str("gateway", gateway).Msg("settings lookup failed, treating gateway as enabled")
	}
	if settings != nil && !settings.Active {
		w := s.record(ctx, gateway, "disabled", nil, rawPayload, nil, "gateway disabled")
		return &ports.IngestResult{Webhook: w}, nil
	}

	if !adapter.VerifyWebhookSignature(rawPayload, headers) {
		w := s.record(ctx, gateway, "unverified", nil, rawPayload, nil, "invalid signature")
		return &ports.IngestResult{Webhook: w}, apperror.ErrInvalidSignature()
	}

	event, err := adapter.ParseWebhook(rawPayload)
	if err != nil {
		w := s.record(ctx, gateway, "unparseable", nil, rawPayload, nil, fmt.Sprintf("parse failed: %v", err))
		return &ports.IngestResult{Webhook: w}, err
	}

	var txID *string
	if event.TransactionID != "" {
		txID = &event.TransactionID
	}
	w := s.record(ctx, gateway, event.EventType, txID, rawPayload, event.Payload, "received")
	result := &ports.IngestResult{Webhook: w}

	// Exact redeliveries are acknowledged without re-entering the engine. A
	// dedup cache failure degrades to the engine's own idempotency.
	eventID := deliveryFingerprint(rawPayload)
	fresh, err := s.dedup.CheckAndSet(ctx, gateway, eventID, dedupTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("gateway", gateway).Msg("webhook dedup check failed, continuing")
	} else if !fresh {
		s.outcome(ctx, w, true, "duplicate delivery ignored")
		return result, nil
	}

	reconcile, err := s.process(ctx, adapter, event, "webhook "+event.EventType)
	if err != nil {
		s.outcome(ctx, w, false, err.Error())
		return result, err
	}

	s.outcome(ctx, w, true, describeOutcome(reconcile))
	result.Reconcile = reconcile
	return result, nil
}

// Reprocess replays a stored webhook through the engine.
func (s *WebhookIngestServiceImpl) Reprocess(ctx context.Context, webhookID uuid.UUID, actor string) (*ports.IngestResult, error) {
	w, err := s.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load webhook: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrTransactionNotFound(webhookID.String())
	}

	adapter, err := s.registry.Get(w.Gateway)
	if err != nil {
		return nil, err
	}

	event, err := adapter.ParseWebhook([]byte(w.RequestData))
	if err != nil {
		return nil, err
	}

	reconcile, err := s.process(ctx, adapter, event, fmt.Sprintf("reprocessed by %s", actor))
	if err != nil {
		s.outcome(ctx, w, false, err.Error())
		return &ports.IngestResult{Webhook: w}, err
	}

	s.outcome(ctx, w, true, describeOutcome(reconcile))
	return &ports.IngestResult{Webhook: w, Reconcile: reconcile}, nil
}

// process resolves the authoritative status and runs the engine. MercadoPago
// notifications carry no status, so the adapter is asked for the payment's
// current state first; that call runs outside any database lock.
func (s *WebhookIngestServiceImpl) process(ctx context.Context, adapter ports.GatewayAdapter, event *ports.WebhookEvent, note string) (*ports.ReconcileResult, error) {
	rawStatus := event.RawStatus
	payload := event.Payload

	if rawStatus == "" {
		if event.TransactionID == "" {
			return nil, apperror.ErrInvalidGatewayRequest("callback carries neither status nor transaction id")
		}
		checkCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
		defer cancel()

		status, err := adapter.CheckTransactionStatus(checkCtx, event.TransactionID)
		if err != nil {
			return nil, err
		}
		rawStatus = status.RawStatus
		payload = status.Raw
	}

	orderID, err := s.resolveOrderID(ctx, event)
	if err != nil {
		return nil, err
	}

	return s.reconciler.Reconcile(ctx, ports.ReconcileInput{
		Gateway:               adapter.Name(),
		ExternalTransactionID: event.TransactionID,
		OrderID:               orderID,
		RawStatus:             rawStatus,
		Payload:               payload,
		Note:                  note,
	})
}

// resolveOrderID maps the payload's order number to an order id for the
// fallback lookup path.
func (s *WebhookIngestServiceImpl) resolveOrderID(ctx context.Context, event *ports.WebhookEvent) (int64, error) {
	if event.OrderNumber == "" {
		return 0, nil
	}
	order, err := s.orderRepo.GetByNumber(ctx, event.OrderNumber)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("resolve order number: %w", err))
	}
	if order == nil {
		return 0, nil
	}
	return order.ID, nil
}

// record persists the delivery with sensitive payload fields masked.
// Best-effort: a storage failure must not block processing.
func (s *WebhookIngestServiceImpl) record(ctx context.Context, gateway, eventType string, txID *string, rawPayload []byte, payload map[string]string, note string) *domain.Webhook {
	w := &domain.Webhook{
		ID:            uuid.New(),
		Gateway:       gateway,
		EventType:     eventType,
		TransactionID: txID,
		Success:       false,
		RequestData:   redactedRequestData(rawPayload, payload),
		ProcessResult: note,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.webhookRepo.Create(ctx, w); err != nil {
		s.log.Error().Err(err).Str("gateway", gateway).Msg("failed to record webhook")
	}
	return w
}

func (s *WebhookIngestServiceImpl) outcome(ctx context.Context, w *domain.Webhook, success bool, result string) {
	w.Success = success
	w.ProcessResult = result
	if err := s.webhookRepo.SetOutcome(ctx, w.ID, success, result); err != nil {
		s.log.Error().Err(err).Str("webhook_id", w.ID.String()).Msg("failed to store webhook outcome")
	}
}

// redactedRequestData stores the flattened payload with sensitive keys
// masked, falling back to the raw body when it never parsed.
func redactedRequestData(rawPayload []byte, payload map[string]string) string {
	if payload == nil {
		return string(rawPayload)
	}
	buf, err := json.Marshal(domain.RedactSensitive(payload))
	if err != nil {
		return string(rawPayload)
	}
	return string(buf)
}

func deliveryFingerprint(rawPayload []byte) string {
	sum := sha256.Sum256(rawPayload)
	return hex.EncodeToString(sum[:])
}

func describeOutcome(r *ports.ReconcileResult) string {
	if r.Applied {
		return fmt.Sprintf("status updated %s -> %s", r.PreviousStatus, r.NewStatus)
	}
	return fmt.Sprintf("no change, status remains %s", r.PreviousStatus)
}
