package repository

import (
	"context"
	"database/sql"

	"shopd/internal/domain"
)

// RolesRepository manages the role lookup table. User.role does not
// reference it; it exists as reference data maintained by platform admins.
type RolesRepository interface {
	List(ctx context.Context) ([]*domain.Role, error)
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	Create(ctx context.Context, value string) (*domain.Role, error)
	Update(ctx context.Context, id int64, value string) error
	Delete(ctx context.Context, id int64) error
}

type PostgresRolesRepository struct {
	db *sql.DB
}

func NewPostgresRolesRepository(db *sql.DB) *PostgresRolesRepository {
	return &PostgresRolesRepository{db: db}
}

var _ RolesRepository = (*PostgresRolesRepository)(nil)

func (r *PostgresRolesRepository) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, value, created_at FROM role ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Value, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func (r *PostgresRolesRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`SELECT id, value, created_at FROM role WHERE id = $1`, id,
	).Scan(&role.ID, &role.Value, &role.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *PostgresRolesRepository) Create(ctx context.Context, value string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO role (value) VALUES ($1) RETURNING id, value, created_at`, value,
	).Scan(&role.ID, &role.Value, &role.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *PostgresRolesRepository) Update(ctx context.Context, id int64, value string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE role SET value = $1 WHERE id = $2`, value, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRolesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM role WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
