package domain

import "time"

// Shipment tracks delivery of an order.
type Shipment struct {
	ID           int64     `db:"id" json:"id"`
	OrderID      int64     `db:"order_id" json:"order_id"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city"`
	TrackingCode string    `db:"tracking_code" json:"tracking_code,omitempty"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
