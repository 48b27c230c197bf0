package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// ShipmentUpdate applies a partial field merge.
type ShipmentUpdate struct {
	Address      *string
	City         *string
	TrackingCode *string
	Status       *string
}

type ShipmentsRepository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]*domain.Shipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Shipment, error)
	Create(ctx context.Context, s *domain.Shipment) (int64, error)
	Update(ctx context.Context, id int64, upd ShipmentUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresShipmentsRepository struct {
	db *sql.DB
}

func NewPostgresShipmentsRepository(db *sql.DB) *PostgresShipmentsRepository {
	return &PostgresShipmentsRepository{db: db}
}

var _ ShipmentsRepository = (*PostgresShipmentsRepository)(nil)

const shipmentColumns = `id, order_id, address, city, COALESCE(tracking_code, ''), status, created_at`

func (r *PostgresShipmentsRepository) ListByOrder(ctx context.Context, orderID int64) ([]*domain.Shipment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipment WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []*domain.Shipment
	for rows.Next() {
		var s domain.Shipment
		if err := rows.Scan(&s.ID, &s.OrderID, &s.Address, &s.City, &s.TrackingCode, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		shipments = append(shipments, &s)
	}
	return shipments, rows.Err()
}

func (r *PostgresShipmentsRepository) GetByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	var s domain.Shipment
	err := r.db.QueryRowContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipment WHERE id = $1`, id,
	).Scan(&s.ID, &s.OrderID, &s.Address, &s.City, &s.TrackingCode, &s.Status, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresShipmentsRepository) Create(ctx context.Context, s *domain.Shipment) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO shipment (order_id, address, city, tracking_code, status)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.OrderID, s.Address, s.City, s.TrackingCode, s.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

func (r *PostgresShipmentsRepository) Update(ctx context.Context, id int64, upd ShipmentUpdate) error {
	var sets []string
	var args []any
	if upd.Address != nil {
		args = append(args, *upd.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	if upd.City != nil {
		args = append(args, *upd.City)
		sets = append(sets, fmt.Sprintf("city = $%d", len(args)))
	}
	if upd.TrackingCode != nil {
		args = append(args, *upd.TrackingCode)
		sets = append(sets, fmt.Sprintf("tracking_code = $%d", len(args)))
	}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE shipment SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresShipmentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
