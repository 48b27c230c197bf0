package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shopd/internal/domain"
)

// Fixture describes one demo tenant. Cross-references between entities use
// slice indexes because ids are only assigned at insert time.
type Fixture struct {
	Roles       []string
	Company     domain.Company
	Users       []FixtureUser
	Stores      []FixtureStore
	Memberships []FixtureMembership
}

// FixtureMembership links Users[UserIndex] to Stores[StoreIndex].
type FixtureMembership struct {
	UserIndex  int
	StoreIndex int
	Status     string
}

// FixtureUser carries an already-hashed password; the seed loader never
// sees plaintext.
type FixtureUser struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

type FixtureStore struct {
	Name       string
	Domain     string
	Theme      string
	Categories []string
	Products   []FixtureProduct
	Customers  []domain.Customer
	Orders     []FixtureOrder
}

type FixtureProduct struct {
	CategoryIndex int // index into Categories, -1 for uncategorized
	Name          string
	Description   string
	Price         domain.Money
	Stock         int
	Image         string
}

type FixtureOrder struct {
	CustomerIndex int // index into Customers, -1 for anonymous
	Status        string
	PaymentStatus string
	Items         []FixtureOrderItem
	Payments      []FixturePayment
	Shipments     []FixtureShipment
}

type FixtureOrderItem struct {
	ProductIndex int
	Quantity     int
}

type FixturePayment struct {
	Provider string
	Status   string
	// Amount zero means the full order total.
	Amount domain.Money
}

type FixtureShipment struct {
	Address      string
	City         string
	TrackingCode string
	Status       string
}

// SeedRepository loads demo fixtures. Apply wipes every table first;
// ApplyStore adds a store (with its own admin user) to an existing company.
// Both run in a single transaction and roll back fully on any failure.
type SeedRepository interface {
	Apply(ctx context.Context, fixtures []Fixture) error
	ApplyStore(ctx context.Context, companyName string, user FixtureUser, s FixtureStore) error
}

type PostgresSeedRepository struct {
	db *sql.DB
}

func NewPostgresSeedRepository(db *sql.DB) *PostgresSeedRepository {
	return &PostgresSeedRepository{db: db}
}

var _ SeedRepository = (*PostgresSeedRepository)(nil)

// wipeOrder is child-first so deletes never trip foreign keys.
var wipeOrder = []string{
	"shipment", "payment", "order_item", `"order"`,
	"customer", "product", "category", "user_store",
	"store", `"user"`, "company", "role",
}

func (r *PostgresSeedRepository) Apply(ctx context.Context, fixtures []Fixture) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range wipeOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", table, err)
		}
	}

	seenRoles := map[string]bool{}
	for _, f := range fixtures {
		for _, role := range f.Roles {
			if seenRoles[role] {
				continue
			}
			seenRoles[role] = true
			if _, err := tx.ExecContext(ctx, `INSERT INTO role (value) VALUES ($1)`, role); err != nil {
				return fmt.Errorf("failed to insert role %q: %w", role, err)
			}
		}
		if err := r.applyTenant(ctx, tx, f); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// ApplyStore is additive: it requires the company from the primary seed and
// refuses to recreate an already-registered admin user.
func (r *PostgresSeedRepository) ApplyStore(ctx context.Context, companyName string, user FixtureUser, s FixtureStore) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var companyID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM company WHERE name = $1`, companyName).Scan(&companyID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("company %q does not exist; run the primary seed first", companyName)
	}
	if err != nil {
		return err
	}

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM "user" WHERE email = $1`, user.Email).Scan(&existing)
	if err == nil {
		return fmt.Errorf("user %s: %w", user.Email, domain.ErrEmailTaken)
	}
	if err != sql.ErrNoRows {
		return err
	}

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO "user" (company_id, name, email, password, role) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		companyID, user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to insert user %q: %w", user.Email, err)
	}

	storeID, err := r.applyStore(ctx, tx, companyID, s)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_store (user_id, store_id, status) VALUES ($1, $2, 'active')`,
		userID, storeID)
	if err != nil {
		return fmt.Errorf("failed to associate user with store: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func (r *PostgresSeedRepository) applyTenant(ctx context.Context, tx *sql.Tx, f Fixture) error {
	var companyID int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO company (name, email, plan) VALUES ($1, $2, $3) RETURNING id`,
		f.Company.Name, f.Company.Email, f.Company.Plan,
	).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("failed to insert company %q: %w", f.Company.Name, err)
	}

	userIDs := make([]int64, len(f.Users))
	for i, u := range f.Users {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO "user" (company_id, name, email, password, role) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			companyID, u.Name, u.Email, u.PasswordHash, u.Role,
		).Scan(&userIDs[i])
		if err != nil {
			return fmt.Errorf("failed to insert user %q: %w", u.Email, err)
		}
	}

	storeIDs := make([]int64, len(f.Stores))
	for i, s := range f.Stores {
		id, err := r.applyStore(ctx, tx, companyID, s)
		if err != nil {
			return err
		}
		storeIDs[i] = id
	}

	for _, m := range f.Memberships {
		status := m.Status
		if status == "" {
			status = domain.UserStoreActive
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_store (user_id, store_id, status) VALUES ($1, $2, $3)`,
			userIDs[m.UserIndex], storeIDs[m.StoreIndex], status)
		if err != nil {
			return fmt.Errorf("failed to associate user with store: %w", err)
		}
	}
	return nil
}

func (r *PostgresSeedRepository) applyStore(ctx context.Context, tx *sql.Tx, companyID int64, s FixtureStore) (int64, error) {
	var storeID int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO store (company_id, name, domain, theme) VALUES ($1, $2, $3, $4) RETURNING id`,
		companyID, s.Name, s.Domain, s.Theme,
	).Scan(&storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert store %q: %w", s.Name, err)
	}

	categoryIDs := make([]int64, len(s.Categories))
	for i, name := range s.Categories {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO category (store_id, name) VALUES ($1, $2) RETURNING id`,
			storeID, name,
		).Scan(&categoryIDs[i])
		if err != nil {
			return 0, fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}

	productIDs := make([]int64, len(s.Products))
	productPrices := make([]domain.Money, len(s.Products))
	for i, p := range s.Products {
		var categoryID any
		if p.CategoryIndex >= 0 && p.CategoryIndex < len(categoryIDs) {
			categoryID = categoryIDs[p.CategoryIndex]
		}
		err := tx.QueryRowContext(ctx,
			`INSERT INTO product (store_id, category_id, name, description, price, stock, image)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			storeID, categoryID, p.Name, p.Description, p.Price, p.Stock, p.Image,
		).Scan(&productIDs[i])
		if err != nil {
			return 0, fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
		productPrices[i] = p.Price
	}

	customerIDs := make([]int64, len(s.Customers))
	for i, c := range s.Customers {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO customer (store_id, name, email, phone) VALUES ($1, $2, $3, $4) RETURNING id`,
			storeID, c.Name, c.Email, c.Phone,
		).Scan(&customerIDs[i])
		if err != nil {
			return 0, fmt.Errorf("failed to insert customer %q: %w", c.Email, err)
		}
	}

	for _, o := range s.Orders {
		var customerID any
		if o.CustomerIndex >= 0 && o.CustomerIndex < len(customerIDs) {
			customerID = customerIDs[o.CustomerIndex]
		}

		var total domain.Money
		for _, item := range o.Items {
			total += productPrices[item.ProductIndex].Mul(item.Quantity)
		}

		var orderID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO "order" (store_id, customer_id, total, status, payment_status)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			storeID, customerID, total, o.Status, o.PaymentStatus,
		).Scan(&orderID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order: %w", err)
		}

		for _, item := range o.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_item (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
				orderID, productIDs[item.ProductIndex], item.Quantity, productPrices[item.ProductIndex])
			if err != nil {
				return 0, fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		for _, p := range o.Payments {
			amount := p.Amount
			if amount == 0 {
				amount = total
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO payment (order_id, provider, amount, status) VALUES ($1, $2, $3, $4)`,
				orderID, p.Provider, amount, p.Status)
			if err != nil {
				return 0, fmt.Errorf("failed to insert payment: %w", err)
			}
		}

		for _, sh := range o.Shipments {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO shipment (order_id, address, city, tracking_code, status) VALUES ($1, $2, $3, $4, $5)`,
				orderID, sh.Address, sh.City, sh.TrackingCode, sh.Status)
			if err != nil {
				return 0, fmt.Errorf("failed to insert shipment: %w", err)
			}
		}
	}
	return storeID, nil
}
