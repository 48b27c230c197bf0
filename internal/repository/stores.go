package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// StoreFilters narrows store listings. CompanyID zero means all companies
// (platform admin view).
type StoreFilters struct {
	CompanyID int64
	Search    string // case-insensitive substring on name/domain
}

// StoreUpdate applies a partial field merge; nil pointers leave the column
// untouched.
type StoreUpdate struct {
	Name   *string
	Domain *string
	Theme  *string
}

type StoresRepository interface {
	List(ctx context.Context, filters StoreFilters) ([]*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	Create(ctx context.Context, s *domain.Store) (int64, error)
	Update(ctx context.Context, id int64, upd StoreUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresStoresRepository struct {
	db *sql.DB
}

func NewPostgresStoresRepository(db *sql.DB) *PostgresStoresRepository {
	return &PostgresStoresRepository{db: db}
}

var _ StoresRepository = (*PostgresStoresRepository)(nil)

func (r *PostgresStoresRepository) List(ctx context.Context, filters StoreFilters) ([]*domain.Store, error) {
	query := `SELECT id, company_id, name, domain, theme, created_at FROM store`
	var conds []string
	var args []any
	if filters.CompanyID != 0 {
		args = append(args, filters.CompanyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR domain ILIKE $%d)", len(args), len(args)))
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

	var stores []*domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Domain, &s.Theme, &s.CreatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, &s)
	}
	return stores, rows.Err()
}

func (r *PostgresStoresRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	var s domain.Store
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, name, domain, theme, created_at FROM store WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Domain, &s.Theme, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresStoresRepository) Create(ctx context.Context, s *domain.Store) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO store (company_id, name, domain, theme) VALUES ($1, $2, $3, $4) RETURNING id`,
		s.CompanyID, s.Name, s.Domain, s.Theme,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

func (r *PostgresStoresRepository) Update(ctx context.Context, id int64, upd StoreUpdate) error {
	var sets []string
	var args []any
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Domain != nil {
		args = append(args, *upd.Domain)
		sets = append(sets, fmt.Sprintf("domain = $%d", len(args)))
	}
	if upd.Theme != nil {
		args = append(args, *upd.Theme)
		sets = append(sets, fmt.Sprintf("theme = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE store SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresStoresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM store WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
