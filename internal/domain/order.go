package domain

import "time"

// Order statuses, enforced at the validation boundary.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Payment statuses of an order.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentPartial  = "partial"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded, PaymentPartial:
		return true
	}
	return false
}

// Order owns its items, payments and shipments; deleting an order cascades
// to all three. Total always equals the sum of item price*quantity at
// creation time.
type Order struct {
	ID            int64       `db:"id" json:"id"`
	StoreID       int64       `db:"store_id" json:"store_id"`
	CustomerID    *int64      `db:"customer_id" json:"customer_id,omitempty"`
	Total         Money       `db:"total" json:"total"`
	Status        string      `db:"status" json:"status"`
	PaymentStatus string      `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	Items         []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem snapshots the product price at order time. Price is immutable
// after creation and independent of the live product price.
type OrderItem struct {
	ID        int64  `db:"id" json:"id"`
	OrderID   int64  `db:"order_id" json:"order_id"`
	ProductID *int64 `db:"product_id" json:"product_id,omitempty"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Price     Money  `db:"price" json:"price"`
}
