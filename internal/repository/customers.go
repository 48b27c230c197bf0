package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// CustomerUpdate applies a partial field merge.
type CustomerUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

type CustomersRepository interface {
	// List filters by a case-insensitive substring over name, email and phone.
	List(ctx context.Context, storeID int64, search string) ([]*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (int64, error)
	Update(ctx context.Context, id int64, upd CustomerUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresCustomersRepository struct {
	db *sql.DB
}

func NewPostgresCustomersRepository(db *sql.DB) *PostgresCustomersRepository {
	return &PostgresCustomersRepository{db: db}
}

var _ CustomersRepository = (*PostgresCustomersRepository)(nil)

func (r *PostgresCustomersRepository) List(ctx context.Context, storeID int64, search string) ([]*domain.Customer, error) {
	query := `SELECT id, store_id, name, email, COALESCE(phone, ''), created_at FROM customer WHERE store_id = $1`
	args := []any{storeID}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			len(args), len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func (r *PostgresCustomersRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, name, email, COALESCE(phone, ''), created_at FROM customer WHERE id = $1`, id,
	).Scan(&c.ID, &c.StoreID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCustomersRepository) Create(ctx context.Context, c *domain.Customer) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO customer (store_id, name, email, phone) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.StoreID, c.Name, c.Email, c.Phone,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *PostgresCustomersRepository) Update(ctx context.Context, id int64, upd CustomerUpdate) error {
	var sets []string
	var args []any
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Email != nil {
		args = append(args, *upd.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if upd.Phone != nil {
		args = append(args, *upd.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE customer SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresCustomersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
