package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAttempt records every attempt to start a payment for an order,
// successful or not, for the admin payment-details view.
type PaymentAttempt struct {
	ID             int64             `json:"id"`
	OrderID        int64             `json:"order_id"`
	PaymentMethod  string            `json:"payment_method"`
	Gateway        string            `json:"gateway"`
	TransactionID  *string           `json:"transaction_id,omitempty"`
	Status         TransactionStatus `json:"status"`
	Amount         decimal.Decimal   `json:"amount"`
	Success        bool              `json:"success"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
