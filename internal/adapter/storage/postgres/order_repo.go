package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taverna-payment-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository against the storefront order
// table. This service only reads order rows and writes the two payment sync
// columns; everything else belongs to the storefront.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, order_number, status, payment_status, payment_gateway, payment_transaction_id, updated_at`

// GetByID fetches an order by numeric id.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	return r.scanOrder(r.pool.QueryRow(ctx, query, id))
}

// GetByNumber fetches an order by its public order number.
func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE order_number = $1`, orderColumns)

	return r.scanOrder(r.pool.QueryRow(ctx, query, orderNumber))
}

// SyncPaymentStatus updates the order projection inside the reconciliation
// transaction, so transaction and order commit or roll back together.
func (r *OrderRepo) SyncPaymentStatus(ctx context.Context, tx pgx.Tx, orderID int64, status domain.OrderStatus, paymentStatus domain.TransactionStatus) error {
	query := `UPDATE orders SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4`

	tag, err := tx.Exec(ctx, query, status, paymentStatus, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("sync order payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found: %d", orderID)
	}
	return nil
}

func (r *OrderRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.PaymentStatus,
		&o.PaymentGateway, &o.PaymentTransactionID, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}
