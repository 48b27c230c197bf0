package domain

import "time"

// Payment records a charge attempt against an order. Provider is a plain
// identifier ("stripe", "manual", ...); no gateway integration exists here.
type Payment struct {
	ID        int64     `db:"id" json:"id"`
	OrderID   int64     `db:"order_id" json:"order_id"`
	Provider  string    `db:"provider" json:"provider"`
	Amount    Money     `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
