package repository

import (
	"context"

	"shopd/internal/domain"
)

// OrderFilters narrows order listings within a store.
type OrderFilters struct {
	Status        string
	PaymentStatus string
	CustomerID    *int64
}

// OrderUpdate replaces status fields wholesale when supplied. No transition
// validation beyond the allowed-value enumerations is enforced.
type OrderUpdate struct {
	Status        *string
	PaymentStatus *string
	CustomerID    *int64
}

// OrdersRepository persists orders and their line items. Create writes the
// order and all items inside one transaction, so a failure partway leaves
// no partial order behind.
type OrdersRepository interface {
	List(ctx context.Context, storeID int64, filters OrderFilters) ([]*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (int64, error)
	Update(ctx context.Context, id int64, upd OrderUpdate) error
	Delete(ctx context.Context, id int64) error
}
