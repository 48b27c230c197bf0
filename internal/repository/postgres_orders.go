package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"

	"github.com/lib/pq"
)

type PostgresOrdersRepository struct {
	db *sql.DB
}

func NewPostgresOrdersRepository(db *sql.DB) *PostgresOrdersRepository {
	return &PostgresOrdersRepository{db: db}
}

var _ OrdersRepository = (*PostgresOrdersRepository)(nil)

const orderColumns = `id, store_id, customer_id, total, status, payment_status, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var customerID sql.NullInt64
	err := row.Scan(&o.ID, &o.StoreID, &customerID, &o.Total, &o.Status, &o.PaymentStatus, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		o.CustomerID = &customerID.Int64
	}
	return &o, nil
}

func (r *PostgresOrdersRepository) List(ctx context.Context, storeID int64, filters OrderFilters) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM "order" WHERE store_id = $1`
	args := []any{storeID}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.PaymentStatus != "" {
		args = append(args, filters.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filters.CustomerID != nil {
		args = append(args, *filters.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads line items for a batch of orders in one query.
func (r *PostgresOrdersRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, price FROM order_item WHERE order_id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var productID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &productID, &item.Quantity, &item.Price); err != nil {
			return err
		}
		if productID.Valid {
			item.ProductID = &productID.Int64
		}
		if o := byID[item.OrderID]; o != nil {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *PostgresOrdersRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM "order" WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Create persists the order row and every item in a single transaction.
func (r *PostgresOrdersRepository) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO "order" (store_id, customer_id, total, status, payment_status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		o.StoreID, nullableID(o.CustomerID), o.Total, o.Status, o.PaymentStatus,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO order_item (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := range items {
		items[i].OrderID = orderID
		err = stmt.QueryRowContext(ctx, orderID, nullableID(items[i].ProductID), items[i].Quantity, items[i].Price).
			Scan(&items[i].ID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}
	o.ID = orderID
	o.Items = items
	return orderID, nil
}

func (r *PostgresOrdersRepository) Update(ctx context.Context, id int64, upd OrderUpdate) error {
	var sets []string
	var args []any
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.PaymentStatus != nil {
		args = append(args, *upd.PaymentStatus)
		sets = append(sets, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if upd.CustomerID != nil {
		args = append(args, *upd.CustomerID)
		sets = append(sets, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE "order" SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresOrdersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "order" WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
