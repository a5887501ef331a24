package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundStatus is the lifecycle state of a refund request.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusCompleted RefundStatus = "completed"
	RefundStatusFailed    RefundStatus = "failed"
)

// Refund records a refund issued against a transaction. A zero Amount signals
// a full refund of the original transaction amount.
type Refund struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	RefundID      string          `json:"refund_id"` // gateway-assigned id
	Amount        decimal.Decimal `json:"amount"`
	Status        RefundStatus    `json:"status"`
	Reason        string          `json:"reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EffectiveAmount resolves the zero-means-full convention against the
// original transaction amount.
func (r *Refund) EffectiveAmount(original decimal.Decimal) decimal.Decimal {
	if r.Amount.IsZero() {
		return original
	}
	return r.Amount
}
