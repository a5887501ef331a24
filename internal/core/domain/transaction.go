package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the canonical lifecycle state of a payment transaction.
// Gateway-specific raw statuses are translated into this vocabulary by each
// adapter's translation table.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusInProcess TransactionStatus = "in_process"
	TransactionStatusApproved  TransactionStatus = "approved"
	TransactionStatusRejected  TransactionStatus = "rejected"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// IsValid reports whether s is one of the canonical statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusInProcess, TransactionStatusApproved,
		TransactionStatusRejected, TransactionStatusFailed, TransactionStatusCancelled,
		TransactionStatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether s accepts no further automatic transitions.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusRejected, TransactionStatusFailed,
		TransactionStatusCancelled, TransactionStatusRefunded:
		return true
	}
	return false
}

// allowedTransitions encodes the canonical state machine:
// pending -> in_process -> {approved, rejected}; approved -> {refunded, cancelled}.
// Terminal states have no outgoing edges.
var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending: {
		TransactionStatusInProcess, TransactionStatusApproved,
		TransactionStatusRejected, TransactionStatusFailed, TransactionStatusCancelled,
	},
	TransactionStatusInProcess: {
		TransactionStatusApproved, TransactionStatusRejected,
		TransactionStatusFailed, TransactionStatusCancelled,
	},
	TransactionStatusApproved: {
		TransactionStatusRefunded, TransactionStatusCancelled,
	},
}

// CanTransitionTo reports whether moving from s to next is a legal automatic
// transition. Transition to the same status is a no-op, never an error, and is
// reported as false here so callers skip the write.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction is one payment attempt at an external gateway, linked to an
// order. ExternalTransactionID plus GatewayName is unique.
type Transaction struct {
	ID                    uuid.UUID         `json:"id"`
	OrderID               int64             `json:"order_id"`
	GatewayName           string            `json:"gateway_name"`
	ExternalTransactionID string            `json:"external_transaction_id"`
	PaymentMethod         string            `json:"payment_method"`
	Amount                decimal.Decimal   `json:"amount"`
	Currency              string            `json:"currency"`
	Status                TransactionStatus `json:"status"`
	AdditionalData        map[string]string `json:"additional_data,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// IsRefundable reports whether a refund may be requested for the transaction.
func (t *Transaction) IsRefundable() bool {
	return t.Status == TransactionStatusApproved
}

// IsCancelable reports whether the transaction may still be cancelled.
// Gateways can still reject the cancel (NotCancelable) when capture already
// completed on their side.
func (t *Transaction) IsCancelable() bool {
	switch t.Status {
	case TransactionStatusPending, TransactionStatusInProcess, TransactionStatusApproved:
		return true
	}
	return false
}
