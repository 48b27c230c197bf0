package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// PaymentUpdate applies a partial field merge.
type PaymentUpdate struct {
	Provider *string
	Amount   *domain.Money
	Status   *string
}

type PaymentsRepository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Create(ctx context.Context, p *domain.Payment) (int64, error)
	Update(ctx context.Context, id int64, upd PaymentUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresPaymentsRepository struct {
	db *sql.DB
}

func NewPostgresPaymentsRepository(db *sql.DB) *PostgresPaymentsRepository {
	return &PostgresPaymentsRepository{db: db}
}

var _ PaymentsRepository = (*PostgresPaymentsRepository)(nil)

func (r *PostgresPaymentsRepository) ListByOrder(ctx context.Context, orderID int64) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, provider, amount, status, created_at FROM payment
		 WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Provider, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func (r *PostgresPaymentsRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, order_id, provider, amount, status, created_at FROM payment WHERE id = $1`, id,
	).Scan(&p.ID, &p.OrderID, &p.Provider, &p.Amount, &p.Status, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPaymentsRepository) Create(ctx context.Context, p *domain.Payment) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO payment (order_id, provider, amount, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.OrderID, p.Provider, p.Amount, p.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (r *PostgresPaymentsRepository) Update(ctx context.Context, id int64, upd PaymentUpdate) error {
	var sets []string
	var args []any
	if upd.Provider != nil {
		args = append(args, *upd.Provider)
		sets = append(sets, fmt.Sprintf("provider = $%d", len(args)))
	}
	if upd.Amount != nil {
		args = append(args, *upd.Amount)
		sets = append(sets, fmt.Sprintf("amount = $%d", len(args)))
	}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE payment SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPaymentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
