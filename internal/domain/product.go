package domain

import "time"

// Product belongs to a store and optionally a category. Price is a
// fixed-point amount; Stock never goes below zero.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	StoreID     int64     `db:"store_id" json:"store_id"`
	CategoryID  *int64    `db:"category_id" json:"category_id,omitempty"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Price       Money     `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	Image       string    `db:"image" json:"image,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
