package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory repositories backing the integration stack. The transaction repo
// emulates SELECT ... FOR UPDATE with per-row mutexes released at
// Commit/Rollback, so the engine's serialization behavior is observable
// without a real PostgreSQL.

// --- Transactor + transaction handle ---

type memTransactor struct{}

func newMemTransactor() *memTransactor {
	return &memTransactor{}
}

func (t *memTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// memTx is a no-op pgx.Tx that tracks acquired row locks and releases them
// exactly once, on whichever of Commit/Rollback runs first.
type memTx struct {
	mu      sync.Mutex
	unlocks []func()
}

func (t *memTx) addUnlock(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unlocks = append(t.unlocks, fn)
}

func (t *memTx) release() {
	t.mu.Lock()
	unlocks := t.unlocks
	t.unlocks = nil
	t.mu.Unlock()
	for _, fn := range unlocks {
		fn()
	}
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) Commit(ctx context.Context) error          { t.release(); return nil }
func (t *memTx) Rollback(ctx context.Context) error        { t.release(); return nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }

// --- Transaction repo ---

type inMemoryTransactionRepo struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*domain.Transaction
	rowLocks map[uuid.UUID]*sync.Mutex
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{
		byID:     make(map[uuid.UUID]*domain.Transaction),
		rowLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockRow takes the per-row mutex and hands its release to the enclosing
// transaction, mirroring FOR UPDATE lock lifetime.
func (r *inMemoryTransactionRepo) lockRow(tx pgx.Tx, id uuid.UUID) {
	r.mu.Lock()
	l, ok := r.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		r.rowLocks[id] = l
	}
	r.mu.Unlock()

	l.Lock()
	if mt, ok := tx.(*memTx); ok {
		mt.addUnlock(l.Unlock)
	} else {
		l.Unlock()
	}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) findByExternalID(gateway, externalID string) *domain.Transaction {
	for _, t := range r.byID {
		if t.GatewayName == gateway && t.ExternalTransactionID == externalID {
			return t
		}
	}
	return nil
}

func (r *inMemoryTransactionRepo) GetByExternalID(ctx context.Context, gateway, externalID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := r.findByExternalID(gateway, externalID)
	if t == nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByExternalIDForUpdate(ctx context.Context, tx pgx.Tx, gateway, externalID string) (*domain.Transaction, error) {
	r.mu.RLock()
	t := r.findByExternalID(gateway, externalID)
	r.mu.RUnlock()
	if t == nil {
		return nil, nil
	}

	r.lockRow(tx, t.ID)

	// Re-read after acquiring the lock: a concurrent holder may have
	// committed a status change in between.
	return r.GetByID(ctx, t.ID)
}

func (r *inMemoryTransactionRepo) GetByOrderForUpdate(ctx context.Context, tx pgx.Tx, orderID int64, gateway string) (*domain.Transaction, error) {
	r.mu.RLock()
	var found *domain.Transaction
	for _, t := range r.byID {
		if t.OrderID == orderID && (gateway == "" || t.GatewayName == gateway) {
			found = t
			break
		}
	}
	r.mu.RUnlock()
	if found == nil {
		return nil, nil
	}

	r.lockRow(tx, found.ID)
	return r.GetByID(ctx, found.ID)
}

func (r *inMemoryTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("transaction not found")
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.byID {
		if params.Gateway != nil && t.GatewayName != *params.Gateway {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		if params.OrderID != nil && t.OrderID != *params.OrderID {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, *t)
	}
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Transaction{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryTransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.TransactionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.TransactionStats{}
	approvedSum := decimal.Zero
	refundedSum := decimal.Zero
	for _, t := range r.byID {
		if periodStart != nil && t.CreatedAt.Unix() < *periodStart {
			continue
		}
		stats.TotalTransactions++
		switch t.Status {
		case domain.TransactionStatusApproved:
			stats.Approved++
			approvedSum = approvedSum.Add(t.Amount)
		case domain.TransactionStatusPending, domain.TransactionStatusInProcess:
			stats.Pending++
		case domain.TransactionStatusFailed, domain.TransactionStatusRejected:
			stats.Failed++
		case domain.TransactionStatusRefunded:
			stats.Refunded++
			refundedSum = refundedSum.Add(t.Amount)
		}
	}
	stats.TotalApproved = approvedSum.StringFixed(2)
	stats.TotalRefunded = refundedSum.StringFixed(2)
	return stats, nil
}

// --- History repo ---

type inMemoryHistoryRepo struct {
	mu      sync.RWMutex
	entries []domain.TransactionHistory
}

func newInMemoryHistoryRepo() *inMemoryHistoryRepo {
	return &inMemoryHistoryRepo{}
}

func (r *inMemoryHistoryRepo) Append(ctx context.Context, tx pgx.Tx, entry *domain.TransactionHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryHistoryRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.TransactionHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.TransactionHistory
	for _, e := range r.entries {
		if e.TransactionID == transactionID {
			result = append(result, e)
		}
	}
	return result, nil
}

// --- Webhook repo ---

type inMemoryWebhookRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.Webhook
}

func newInMemoryWebhookRepo() *inMemoryWebhookRepo {
	return &inMemoryWebhookRepo{byID: make(map[uuid.UUID]*domain.Webhook)}
}

func (r *inMemoryWebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *inMemoryWebhookRepo) SetOutcome(ctx context.Context, id uuid.UUID, success bool, processResult string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("webhook not found")
	}
	w.Success = success
	w.ProcessResult = processResult
	return nil
}

func (r *inMemoryWebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWebhookRepo) List(ctx context.Context, params ports.WebhookListParams) ([]domain.Webhook, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Webhook
	for _, w := range r.byID {
		if params.Gateway != nil && w.Gateway != *params.Gateway {
			continue
		}
		if params.Success != nil && w.Success != *params.Success {
			continue
		}
		if params.TransactionID != nil && (w.TransactionID == nil || *w.TransactionID != *params.TransactionID) {
			continue
		}
		result = append(result, *w)
	}
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Webhook{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

// --- Refund repo ---

type inMemoryRefundRepo struct {
	mu      sync.RWMutex
	refunds []domain.Refund
}

func newInMemoryRefundRepo() *inMemoryRefundRepo {
	return &inMemoryRefundRepo{}
}

func (r *inMemoryRefundRepo) Create(ctx context.Context, tx pgx.Tx, ref *domain.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refunds = append(r.refunds, *ref)
	return nil
}

func (r *inMemoryRefundRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.Refund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Refund
	for _, ref := range r.refunds {
		if ref.TransactionID == transactionID {
			result = append(result, ref)
		}
	}
	return result, nil
}

func (r *inMemoryRefundRepo) SumActive(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for _, ref := range r.refunds {
		if ref.TransactionID == transactionID && ref.Status != domain.RefundStatusFailed {
			sum = sum.Add(ref.Amount)
		}
	}
	return sum.String(), nil
}

// --- Order repo ---

type inMemoryOrderRepo struct {
	mu   sync.RWMutex
	byID map[int64]*domain.Order
}

func newInMemoryOrderRepo() *inMemoryOrderRepo {
	return &inMemoryOrderRepo{byID: make(map[int64]*domain.Order)}
}

func (r *inMemoryOrderRepo) seed(o domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[o.ID] = &o
}

func (r *inMemoryOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.byID {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOrderRepo) SyncPaymentStatus(ctx context.Context, tx pgx.Tx, orderID int64, status domain.OrderStatus, paymentStatus domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[orderID]
	if !ok {
		return fmt.Errorf("order not found")
	}
	o.Status = status
	o.PaymentStatus = paymentStatus
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// --- Attempt repo ---

type inMemoryAttemptRepo struct {
	mu       sync.RWMutex
	nextID   int64
	attempts []domain.PaymentAttempt
}

func newInMemoryAttemptRepo() *inMemoryAttemptRepo {
	return &inMemoryAttemptRepo{nextID: 1}
}

func (r *inMemoryAttemptRepo) Create(ctx context.Context, a *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.attempts = append(r.attempts, *a)
	return nil
}

func (r *inMemoryAttemptRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PaymentAttempt
	for _, a := range r.attempts {
		if a.OrderID == orderID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *inMemoryAttemptRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attempts {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

// --- Operator repo ---

type inMemoryOperatorRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.Operator
}

func newInMemoryOperatorRepo() *inMemoryOperatorRepo {
	return &inMemoryOperatorRepo{byID: make(map[uuid.UUID]*domain.Operator)}
}

func (r *inMemoryOperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == op.Username {
			return fmt.Errorf("username already exists")
		}
	}
	cp := *op
	r.byID[op.ID] = &cp
	return nil
}

func (r *inMemoryOperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, op := range r.byID {
		if op.Username == username {
			cp := *op
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *op
	return &cp, nil
}

// --- Settings repo ---

type inMemorySettingsRepo struct {
	mu        sync.RWMutex
	byGateway map[string]*domain.GatewaySettings
}

func newInMemorySettingsRepo() *inMemorySettingsRepo {
	return &inMemorySettingsRepo{byGateway: make(map[string]*domain.GatewaySettings)}
}

func (r *inMemorySettingsRepo) Get(ctx context.Context, gateway string) (*domain.GatewaySettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byGateway[gateway]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemorySettingsRepo) List(ctx context.Context) ([]domain.GatewaySettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.GatewaySettings
	for _, s := range r.byGateway {
		result = append(result, *s)
	}
	return result, nil
}

func (r *inMemorySettingsRepo) Upsert(ctx context.Context, s *domain.GatewaySettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.byGateway[s.Gateway] = &cp
	return nil
}
