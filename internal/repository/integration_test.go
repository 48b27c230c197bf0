//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"shopd/internal/database"
	"shopd/internal/domain"

	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getTestDB connects to the integration database, or skips the test when
// none is reachable. Seed tests wipe every table, so point TEST_DB_NAME at
// a throwaway database.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &database.Config{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     5432,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "shopd_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
	db, err := database.NewPostgres(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	return db
}

func testFixture() Fixture {
	return Fixture{
		Roles:   []string{domain.RolePlatformAdmin, domain.RoleStoreAdmin, domain.RoleCustomer},
		Company: domain.Company{Name: "Acme", Email: "acme@test.local", Plan: "basic"},
		Users: []FixtureUser{
			{Name: "Admin", Email: "admin@test.local", PasswordHash: "x", Role: domain.RoleStoreAdmin},
		},
		Stores: []FixtureStore{
			{
				Name:       "Acme Store",
				Domain:     "acme.test.local",
				Theme:      "modern",
				Categories: []string{"Books", "Games"},
				Products: []FixtureProduct{
					{CategoryIndex: 0, Name: "Novel", Price: domain.Money(1999), Stock: 10},
					{CategoryIndex: 1, Name: "Puzzle", Price: domain.Money(2999), Stock: 5},
				},
				Customers: []domain.Customer{
					{Name: "Ana", Email: "ana@test.local", Phone: "+100"},
				},
			},
		},
		Memberships: []FixtureMembership{{UserIndex: 0, StoreIndex: 0, Status: domain.UserStoreActive}},
	}
}

func TestSeedApplyAndOrderRoundTrip(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()
	ctx := context.Background()

	seed := NewPostgresSeedRepository(db)
	require.NoError(t, seed.Apply(ctx, []Fixture{testFixture()}))

	stores := NewPostgresStoresRepository(db)
	found, err := stores.List(ctx, StoreFilters{Search: "acme"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	storeID := found[0].ID

	products := NewPostgresProductsRepository(db)
	prods, err := products.List(ctx, storeID, ProductFilters{})
	require.NoError(t, err)
	require.Len(t, prods, 2)

	var novel *domain.Product
	for _, p := range prods {
		if p.Name == "Novel" {
			novel = p
		}
	}
	require.NotNil(t, novel)

	orders := NewPostgresOrdersRepository(db)
	items := []domain.OrderItem{
		{ProductID: &novel.ID, Quantity: 2, Price: novel.Price},
	}
	order := &domain.Order{
		StoreID:       storeID,
		Total:         novel.Price.Mul(2),
		Status:        domain.OrderPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	orderID, err := orders.Create(ctx, order, items)
	require.NoError(t, err)

	got, err := orders.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Total, got.Total)
	require.Len(t, got.Items, 1)
	require.Equal(t, 2, got.Items[0].Quantity)
	require.Equal(t, novel.Price, got.Items[0].Price)

	resolver := NewPostgresTenantResolver(db)
	resolvedStore, err := resolver.StoreIDByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, storeID, resolvedStore)

	companyID, err := resolver.CompanyIDByStoreID(ctx, storeID)
	require.NoError(t, err)
	require.Equal(t, found[0].CompanyID, companyID)
}

func TestSeedApplyIsRepeatable(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()
	ctx := context.Background()

	seed := NewPostgresSeedRepository(db)
	require.NoError(t, seed.Apply(ctx, []Fixture{testFixture()}))
	// A second run wipes the first and leaves exactly one tenant again.
	require.NoError(t, seed.Apply(ctx, []Fixture{testFixture()}))

	companies := NewPostgresCompaniesRepository(db)
	all, err := companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSeedApplyStoreIsAdditive(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()
	ctx := context.Background()

	seed := NewPostgresSeedRepository(db)
	require.NoError(t, seed.Apply(ctx, []Fixture{testFixture()}))

	extra := FixtureStore{
		Name:       "Acme Outlet",
		Domain:     "outlet.test.local",
		Theme:      "classic",
		Categories: []string{"Clearance"},
		Products: []FixtureProduct{
			{CategoryIndex: 0, Name: "Remnant", Price: domain.Money(499), Stock: 99},
		},
	}
	user := FixtureUser{Name: "Outlet Admin", Email: "outlet@test.local", PasswordHash: "x", Role: domain.RoleStoreAdmin}
	require.NoError(t, seed.ApplyStore(ctx, "Acme", user, extra))

	stores := NewPostgresStoresRepository(db)
	all, err := stores.List(ctx, StoreFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Reusing the admin email must fail and leave nothing behind.
	err = seed.ApplyStore(ctx, "Acme", user, extra)
	require.Error(t, err)
	all, err = stores.List(ctx, StoreFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUserPartialUpdate(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()
	ctx := context.Background()

	seed := NewPostgresSeedRepository(db)
	require.NoError(t, seed.Apply(ctx, []Fixture{testFixture()}))

	users := NewPostgresUsersRepository(db)
	u, err := users.GetByEmail(ctx, "admin@test.local")
	require.NoError(t, err)

	name := "Renamed"
	require.NoError(t, users.Update(ctx, u.ID, UserUpdate{Name: &name}))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.Role, got.Role)
}
