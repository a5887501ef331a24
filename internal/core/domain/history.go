package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionHistory is one append-only entry in a transaction's status log.
// Entries are never mutated or deleted; no-op webhook replays still append an
// entry for audit.
type TransactionHistory struct {
	ID            uuid.UUID         `json:"id"`
	TransactionID uuid.UUID         `json:"transaction_id"`
	Status        TransactionStatus `json:"status"`
	Snapshot      map[string]string `json:"snapshot,omitempty"`
	Note          string            `json:"note,omitempty"`
	Actor         string            `json:"actor,omitempty"` // set for manual operator actions
	CreatedAt     time.Time         `json:"created_at"`
}
