package domain

import "time"

// OrderStatus is the fulfillment state of an order. Owned by the storefront;
// this service only synchronizes it from payment outcomes.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Order is the projection of a storefront order this service reads and
// synchronizes. PaymentStatus mirrors the linked transaction's status.
type Order struct {
	ID                   int64             `json:"id"`
	OrderNumber          string            `json:"order_number"`
	Status               OrderStatus       `json:"status"`
	PaymentStatus        TransactionStatus `json:"payment_status"`
	PaymentGateway       string            `json:"payment_gateway,omitempty"`
	PaymentTransactionID string            `json:"payment_transaction_id,omitempty"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// orderStatusFor is the fixed payment-status to order-status mapping applied
// during reconciliation. Rejected and failed payments keep the order open so
// the customer can retry with another method.
var orderStatusFor = map[TransactionStatus]OrderStatus{
	TransactionStatusPending:   OrderStatusPending,
	TransactionStatusInProcess: OrderStatusPending,
	TransactionStatusApproved:  OrderStatusProcessing,
	TransactionStatusRejected:  OrderStatusPending,
	TransactionStatusFailed:    OrderStatusPending,
	TransactionStatusCancelled: OrderStatusCancelled,
	TransactionStatusRefunded:  OrderStatusRefunded,
}

// OrderStatusForPayment returns the order status a payment status maps to.
func OrderStatusForPayment(s TransactionStatus) OrderStatus {
	if os, ok := orderStatusFor[s]; ok {
		return os
	}
	return OrderStatusPending
}
