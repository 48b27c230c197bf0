package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopd/internal/domain"
)

// ProductFilters narrows product listings within a store.
type ProductFilters struct {
	Search     string // substring on name/description
	CategoryID *int64
}

// ProductUpdate applies a partial field merge. A non-nil StoreID moves the
// product; callers authorize against both the current and the new store.
type ProductUpdate struct {
	StoreID     *int64
	CategoryID  *int64
	Name        *string
	Description *string
	Price       *domain.Money
	Stock       *int
	Image       *string
}

type ProductsRepository interface {
	List(ctx context.Context, storeID int64, filters ProductFilters) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetForStore resolves a product only if it belongs to the store;
	// order assembly uses this to reject cross-store line items.
	GetForStore(ctx context.Context, storeID, productID int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (int64, error)
	Update(ctx context.Context, id int64, upd ProductUpdate) error
	Delete(ctx context.Context, id int64) error
}

type PostgresProductsRepository struct {
	db *sql.DB
}

func NewPostgresProductsRepository(db *sql.DB) *PostgresProductsRepository {
	return &PostgresProductsRepository{db: db}
}

var _ ProductsRepository = (*PostgresProductsRepository)(nil)

const productColumns = `id, store_id, category_id, name, COALESCE(description, ''), price, stock, COALESCE(image, ''), created_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	var categoryID sql.NullInt64
	err := row.Scan(&p.ID, &p.StoreID, &categoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Image, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	return &p, nil
}

func (r *PostgresProductsRepository) List(ctx context.Context, storeID int64, filters ProductFilters) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE store_id = $1`
	args := []any{storeID}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductsRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM product WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *PostgresProductsRepository) GetForStore(ctx context.Context, storeID, productID int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM product WHERE id = $1 AND store_id = $2`, productID, storeID)
	return scanProduct(row)
}

func (r *PostgresProductsRepository) Create(ctx context.Context, p *domain.Product) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO product (store_id, category_id, name, description, price, stock, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.StoreID, nullableID(p.CategoryID), p.Name, p.Description, p.Price, p.Stock, p.Image,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (r *PostgresProductsRepository) Update(ctx context.Context, id int64, upd ProductUpdate) error {
	var sets []string
	var args []any
	if upd.StoreID != nil {
		args = append(args, *upd.StoreID)
		sets = append(sets, fmt.Sprintf("store_id = $%d", len(args)))
	}
	if upd.CategoryID != nil {
		args = append(args, *upd.CategoryID)
		sets = append(sets, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if upd.Price != nil {
		args = append(args, *upd.Price)
		sets = append(sets, fmt.Sprintf("price = $%d", len(args)))
	}
	if upd.Stock != nil {
		args = append(args, *upd.Stock)
		sets = append(sets, fmt.Sprintf("stock = $%d", len(args)))
	}
	if upd.Image != nil {
		args = append(args, *upd.Image)
		sets = append(sets, fmt.Sprintf("image = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE product SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresProductsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullableID converts an optional foreign key for INSERT parameters.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
