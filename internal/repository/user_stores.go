package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shopd/internal/domain"
)

// UserStoreFilters narrows association listings.
type UserStoreFilters struct {
	UserID  *int64
	StoreID *int64
}

// StoreMembership is a user's view of one store association.
type StoreMembership struct {
	Store    domain.Store `json:"store"`
	Status   string       `json:"status"`
	JoinedAt time.Time    `json:"joined_at"`
}

// UserMembership is a store's view of one associated user.
type UserMembership struct {
	User     domain.User `json:"user"`
	Status   string      `json:"status"`
	JoinedAt time.Time   `json:"joined_at"`
}

type UserStoresRepository interface {
	List(ctx context.Context, filters UserStoreFilters) ([]*domain.UserStore, error)
	GetByID(ctx context.Context, id int64) (*domain.UserStore, error)
	// FindByUserAndStore returns the association regardless of status;
	// (user_id, store_id) is unique.
	FindByUserAndStore(ctx context.Context, userID, storeID int64) (*domain.UserStore, error)
	Create(ctx context.Context, us *domain.UserStore) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error

	ListStoresByUser(ctx context.Context, userID int64) ([]*StoreMembership, error)
	ListUsersByStore(ctx context.Context, storeID int64) ([]*UserMembership, error)
}

type PostgresUserStoresRepository struct {
	db *sql.DB
}

func NewPostgresUserStoresRepository(db *sql.DB) *PostgresUserStoresRepository {
	return &PostgresUserStoresRepository{db: db}
}

var _ UserStoresRepository = (*PostgresUserStoresRepository)(nil)

func scanUserStore(row interface{ Scan(...any) error }) (*domain.UserStore, error) {
	var us domain.UserStore
	err := row.Scan(&us.ID, &us.UserID, &us.StoreID, &us.Status, &us.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func (r *PostgresUserStoresRepository) List(ctx context.Context, filters UserStoreFilters) ([]*domain.UserStore, error) {
	query := `SELECT id, user_id, store_id, status, created_at FROM user_store`
	var conds []string
	var args []any
	if filters.UserID != nil {
		args = append(args, *filters.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filters.StoreID != nil {
		args = append(args, *filters.StoreID)
		conds = append(conds, fmt.Sprintf("store_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var associations []*domain.UserStore
	for rows.Next() {
		us, err := scanUserStore(rows)
		if err != nil {
			return nil, err
		}
		associations = append(associations, us)
	}
	return associations, rows.Err()
}

func (r *PostgresUserStoresRepository) GetByID(ctx context.Context, id int64) (*domain.UserStore, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, store_id, status, created_at FROM user_store WHERE id = $1`, id)
	return scanUserStore(row)
}

func (r *PostgresUserStoresRepository) FindByUserAndStore(ctx context.Context, userID, storeID int64) (*domain.UserStore, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, store_id, status, created_at FROM user_store WHERE user_id = $1 AND store_id = $2`,
		userID, storeID)
	return scanUserStore(row)
}

func (r *PostgresUserStoresRepository) Create(ctx context.Context, us *domain.UserStore) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_store (user_id, store_id, status) VALUES ($1, $2, $3) RETURNING id`,
		us.UserID, us.StoreID, us.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	us.ID = id
	return id, nil
}

func (r *PostgresUserStoresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE user_store SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserStoresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_store WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserStoresRepository) ListStoresByUser(ctx context.Context, userID int64) ([]*StoreMembership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.company_id, s.name, s.domain, s.theme, s.created_at, us.status, us.created_at
		 FROM user_store us JOIN store s ON s.id = us.store_id
		 WHERE us.user_id = $1 ORDER BY us.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*StoreMembership
	for rows.Next() {
		var m StoreMembership
		if err := rows.Scan(&m.Store.ID, &m.Store.CompanyID, &m.Store.Name, &m.Store.Domain,
			&m.Store.Theme, &m.Store.CreatedAt, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}

func (r *PostgresUserStoresRepository) ListUsersByStore(ctx context.Context, storeID int64) ([]*UserMembership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.company_id, u.name, u.email, u.role, u.created_at, us.status, us.created_at
		 FROM user_store us JOIN "user" u ON u.id = us.user_id
		 WHERE us.store_id = $1 ORDER BY us.created_at DESC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*UserMembership
	for rows.Next() {
		var m UserMembership
		if err := rows.Scan(&m.User.ID, &m.User.CompanyID, &m.User.Name, &m.User.Email,
			&m.User.Role, &m.User.CreatedAt, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}
