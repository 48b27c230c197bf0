package repository

import (
	"context"
	"database/sql"

	"shopd/internal/domain"
)

// TenantResolver maps resources to the store (and transitively the company)
// that owns them. Payments, shipments and user-store rows have no store_id
// of their own, so they resolve through their parent order or association.
type TenantResolver interface {
	CompanyIDByStoreID(ctx context.Context, storeID int64) (int64, error)
	StoreIDByOrderID(ctx context.Context, orderID int64) (int64, error)
	StoreIDByUserStoreID(ctx context.Context, userStoreID int64) (int64, error)
	CompanyIDByUserID(ctx context.Context, userID int64) (int64, error)
}

type PostgresTenantResolver struct {
	db *sql.DB
}

func NewPostgresTenantResolver(db *sql.DB) *PostgresTenantResolver {
	return &PostgresTenantResolver{db: db}
}

var _ TenantResolver = (*PostgresTenantResolver)(nil)

func (r *PostgresTenantResolver) CompanyIDByStoreID(ctx context.Context, storeID int64) (int64, error) {
	var companyID int64
	err := r.db.QueryRowContext(ctx, `SELECT company_id FROM store WHERE id = $1`, storeID).Scan(&companyID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return companyID, err
}

func (r *PostgresTenantResolver) StoreIDByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var storeID int64
	err := r.db.QueryRowContext(ctx, `SELECT store_id FROM "order" WHERE id = $1`, orderID).Scan(&storeID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return storeID, err
}

func (r *PostgresTenantResolver) StoreIDByUserStoreID(ctx context.Context, userStoreID int64) (int64, error) {
	var storeID int64
	err := r.db.QueryRowContext(ctx, `SELECT store_id FROM user_store WHERE id = $1`, userStoreID).Scan(&storeID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return storeID, err
}

func (r *PostgresTenantResolver) CompanyIDByUserID(ctx context.Context, userID int64) (int64, error) {
	var companyID int64
	err := r.db.QueryRowContext(ctx, `SELECT company_id FROM "user" WHERE id = $1`, userID).Scan(&companyID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return companyID, err
}
