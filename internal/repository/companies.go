package repository

import (
	"context"
	"database/sql"

	"shopd/internal/domain"
)

// CompaniesRepository manages the tenant table itself. There are no company
// routes; registration and seeding are the only callers.
type CompaniesRepository interface {
	Get(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresCompaniesRepository struct {
	db *sql.DB
}

func NewPostgresCompaniesRepository(db *sql.DB) *PostgresCompaniesRepository {
	return &PostgresCompaniesRepository{db: db}
}

var _ CompaniesRepository = (*PostgresCompaniesRepository)(nil)

func (r *PostgresCompaniesRepository) Get(ctx context.Context, id int64) (*domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, plan, created_at FROM company WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Plan, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCompaniesRepository) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, plan, created_at FROM company ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Plan, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *PostgresCompaniesRepository) Create(ctx context.Context, c *domain.Company) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO company (name, email, plan) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Email, c.Plan,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *PostgresCompaniesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM company WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
