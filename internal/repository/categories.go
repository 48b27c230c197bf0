package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// CategoryUpdate applies a partial field merge. A non-nil StoreID moves the
// category to another store; the caller must authorize against both stores
// before invoking Update.
type CategoryUpdate struct {
	StoreID *int64
	Name    *string
}

type CategoriesRepository interface {
	List(ctx context.Context, storeID int64, search string) ([]*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (int64, error)
	Update(ctx context.Context, id int64, upd CategoryUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresCategoriesRepository struct {
	db *sql.DB
}

func NewPostgresCategoriesRepository(db *sql.DB) *PostgresCategoriesRepository {
	return &PostgresCategoriesRepository{db: db}
}

var _ CategoriesRepository = (*PostgresCategoriesRepository)(nil)

func (r *PostgresCategoriesRepository) List(ctx context.Context, storeID int64, search string) ([]*domain.Category, error) {
	query := `SELECT id, store_id, name, created_at FROM category WHERE store_id = $1`
	args := []any{storeID}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoriesRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, name, created_at FROM category WHERE id = $1`, id,
	).Scan(&c.ID, &c.StoreID, &c.Name, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoriesRepository) Create(ctx context.Context, c *domain.Category) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO category (store_id, name) VALUES ($1, $2) RETURNING id`,
		c.StoreID, c.Name,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *PostgresCategoriesRepository) Update(ctx context.Context, id int64, upd CategoryUpdate) error {
	var sets []string
	var args []any
	if upd.StoreID != nil {
		args = append(args, *upd.StoreID)
		sets = append(sets, fmt.Sprintf("store_id = $%d", len(args)))
	}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE category SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresCategoriesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
