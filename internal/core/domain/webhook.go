package domain

import (
	"time"

	"github.com/google/uuid"
)

// Webhook records one gateway callback delivery. Rows are immutable once the
// processing outcome is written: Success reflects internal processing, never
// the HTTP response, which is always 200 to the provider.
type Webhook struct {
	ID            uuid.UUID `json:"id"`
	Gateway       string    `json:"gateway"`
	EventType     string    `json:"event_type"`
	TransactionID *string   `json:"transaction_id,omitempty"` // external id; may be unresolvable on arrival
	Success       bool      `json:"success"`
	RequestData   string    `json:"request_data"`   // raw payload JSON, sensitive keys masked
	ProcessResult string    `json:"process_result"` // outcome description for the admin log
	CreatedAt     time.Time `json:"created_at"`
}
