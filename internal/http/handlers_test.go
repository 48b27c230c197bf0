package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopd/internal/auth"
	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"
	"shopd/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	storeCompany map[int64]int64
}

func (s *stubResolver) CompanyIDByStoreID(ctx context.Context, storeID int64) (int64, error) {
	id, ok := s.storeCompany[storeID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (s *stubResolver) StoreIDByOrderID(ctx context.Context, orderID int64) (int64, error) {
	return 0, domain.ErrNotFound
}

func (s *stubResolver) StoreIDByUserStoreID(ctx context.Context, userStoreID int64) (int64, error) {
	return 0, domain.ErrNotFound
}

func (s *stubResolver) CompanyIDByUserID(ctx context.Context, userID int64) (int64, error) {
	return 0, domain.ErrNotFound
}

type stubProductsRepo struct {
	byID map[int64]*domain.Product
}

func (s *stubProductsRepo) List(ctx context.Context, storeID int64, filters repository.ProductFilters) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range s.byID {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductsRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProductsRepo) GetForStore(ctx context.Context, storeID, productID int64) (*domain.Product, error) {
	p, ok := s.byID[productID]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProductsRepo) Create(ctx context.Context, p *domain.Product) (int64, error) {
	return 0, domain.ErrNotFound
}

func (s *stubProductsRepo) Update(ctx context.Context, id int64, upd repository.ProductUpdate) error {
	return nil
}

func (s *stubProductsRepo) Delete(ctx context.Context, id int64) error { return nil }

type stubOrdersRepo struct {
	byID   map[int64]*domain.Order
	nextID int64
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{byID: map[int64]*domain.Order{}}
}

func (s *stubOrdersRepo) List(ctx context.Context, storeID int64, filters repository.OrderFilters) ([]*domain.Order, error) {
	return nil, nil
}

func (s *stubOrdersRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *stubOrdersRepo) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (int64, error) {
	s.nextID++
	o.ID = s.nextID
	for i := range items {
		s.nextID++
		items[i].ID = s.nextID
		items[i].OrderID = o.ID
	}
	o.Items = items
	s.byID[o.ID] = o
	return o.ID, nil
}

func (s *stubOrdersRepo) Update(ctx context.Context, id int64, upd repository.OrderUpdate) error {
	return nil
}

func (s *stubOrdersRepo) Delete(ctx context.Context, id int64) error { return nil }

type stubUsersRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (s *stubUsersRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUsersRepo) List(ctx context.Context, filters repository.UserFilters) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUsersRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	s.nextID++
	u.ID = s.nextID
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return u.ID, nil
}

func (s *stubUsersRepo) Update(ctx context.Context, id int64, upd repository.UserUpdate) error {
	u, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	return nil
}

func (s *stubUsersRepo) Delete(ctx context.Context, id int64) error { return nil }

type stubUserStoresRepo struct {
	byID   map[int64]*domain.UserStore
	nextID int64
}

func newStubUserStoresRepo() *stubUserStoresRepo {
	return &stubUserStoresRepo{byID: map[int64]*domain.UserStore{}}
}

func (s *stubUserStoresRepo) List(ctx context.Context, filters repository.UserStoreFilters) ([]*domain.UserStore, error) {
	return nil, nil
}

func (s *stubUserStoresRepo) GetByID(ctx context.Context, id int64) (*domain.UserStore, error) {
	us, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return us, nil
}

func (s *stubUserStoresRepo) FindByUserAndStore(ctx context.Context, userID, storeID int64) (*domain.UserStore, error) {
	for _, us := range s.byID {
		if us.UserID == userID && us.StoreID == storeID {
			return us, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStoresRepo) Create(ctx context.Context, us *domain.UserStore) (int64, error) {
	s.nextID++
	us.ID = s.nextID
	s.byID[us.ID] = us
	return us.ID, nil
}

func (s *stubUserStoresRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	us, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	us.Status = status
	return nil
}

func (s *stubUserStoresRepo) Delete(ctx context.Context, id int64) error { return nil }

func (s *stubUserStoresRepo) ListStoresByUser(ctx context.Context, userID int64) ([]*repository.StoreMembership, error) {
	return nil, nil
}

func (s *stubUserStoresRepo) ListUsersByStore(ctx context.Context, storeID int64) ([]*repository.UserMembership, error) {
	return nil, nil
}

// testEnv wires a router over in-memory stubs. Store 10 belongs to company 1
// and store 20 to company 2.
type testEnv struct {
	router     *Router
	tokens     *auth.TokenService
	products   *stubProductsRepo
	orders     *stubOrdersRepo
	users      *stubUsersRepo
	userStores *stubUserStoresRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	resolver := &stubResolver{storeCompany: map[int64]int64{10: 1, 20: 2}}
	access := service.NewAccess(resolver, store.NewMemoryKV(), logger)

	env := &testEnv{
		tokens:     tokens,
		products:   &stubProductsRepo{byID: map[int64]*domain.Product{}},
		orders:     newStubOrdersRepo(),
		users:      newStubUsersRepo(),
		userStores: newStubUserStoresRepo(),
	}

	orderSvc := service.NewOrderService(env.orders, env.products, logger)

	r := NewRouter(tokens, logger)
	products := NewProductsHandler(env.products, access, logger, "test")
	orders := NewOrdersHandler(env.orders, orderSvc, access, logger, "test")
	userStores := NewUserStoresHandler(env.userStores, env.users, access, logger, "test")
	r.HandleAuthed("/products", products.Collection)
	r.HandleAuthed("/products/", products.Item)
	r.HandleAuthed("/orders", orders.Collection)
	r.HandleAuthed("/user-stores/add-customer", userStores.AddCustomer)
	env.router = r
	return env
}

func (e *testEnv) bearer(t *testing.T, userID int64, role string, companyID int64) string {
	t.Helper()
	token, err := e.tokens.Issue(userID, "user@test.local", role, companyID)
	require.NoError(t, err)
	return "Bearer " + token
}

type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Errors  []string                   `json:"errors"`
}

func (e *testEnv) do(t *testing.T, method, path, authorization, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)
	code, res := env.do(t, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.False(t, res.Success)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)
	code, res := env.do(t, http.MethodGet, "/products/1", "Bearer not-a-token", "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.False(t, res.Success)
}

func TestProductVisibilityAcrossTenants(t *testing.T) {
	env := newTestEnv(t)
	env.products.byID[1] = &domain.Product{ID: 1, StoreID: 10, Name: "Laptop", Price: domain.Money(89999)}

	// Owner tenant sees the product.
	code, res := env.do(t, http.MethodGet, "/products/1", env.bearer(t, 5, domain.RoleStoreAdmin, 1), "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, res.Success)

	// Another tenant gets forbidden, not hidden: the product exists.
	code, res = env.do(t, http.MethodGet, "/products/1", env.bearer(t, 6, domain.RoleStoreAdmin, 2), "")
	require.Equal(t, http.StatusForbidden, code)
	require.False(t, res.Success)

	// A platform admin crosses tenants freely.
	code, _ = env.do(t, http.MethodGet, "/products/1", env.bearer(t, 7, domain.RolePlatformAdmin, 99), "")
	require.Equal(t, http.StatusOK, code)

	// A missing product is a 404 for everyone.
	code, _ = env.do(t, http.MethodGet, "/products/999", env.bearer(t, 5, domain.RoleStoreAdmin, 1), "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestCreateOrderIgnoresClientPriceField(t *testing.T) {
	env := newTestEnv(t)
	env.products.byID[1] = &domain.Product{ID: 1, StoreID: 10, Name: "Laptop", Price: domain.Money(89999)}

	body := `{"store_id":10,"items":[{"product_id":1,"quantity":2,"price":0.01}]}`
	code, res := env.do(t, http.MethodPost, "/orders", env.bearer(t, 5, domain.RoleStoreAdmin, 1), body)
	require.Equal(t, http.StatusCreated, code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(res.Data["order"], &order))
	require.Equal(t, domain.Money(179998), order.Total)
	require.Len(t, order.Items, 1)
	require.Equal(t, domain.Money(89999), order.Items[0].Price)
}

func TestCreateOrderReportsAllValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	env.products.byID[1] = &domain.Product{ID: 1, StoreID: 10, Price: domain.Money(89999)}

	body := `{"store_id":10,"status":"bogus","payment_status":"nope","items":[{"product_id":1}]}`
	code, res := env.do(t, http.MethodPost, "/orders", env.bearer(t, 5, domain.RoleStoreAdmin, 1), body)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, res.Success)
	require.Len(t, res.Errors, 2)
}

func TestAddCustomerIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearer(t, 5, domain.RoleStoreAdmin, 1)
	body := `{"store_id":10,"email":"diego@shop.com","name":"Diego","password":"secret1"}`

	code, res := env.do(t, http.MethodPost, "/user-stores/add-customer", bearer, body)
	require.Equal(t, http.StatusCreated, code)

	var first domain.UserStore
	require.NoError(t, json.Unmarshal(res.Data["userStore"], &first))
	require.Equal(t, domain.UserStoreActive, first.Status)

	var created bool
	require.NoError(t, json.Unmarshal(res.Data["userCreated"], &created))
	require.True(t, created)

	// The repeat call returns the same association instead of failing.
	code, res = env.do(t, http.MethodPost, "/user-stores/add-customer", bearer, body)
	require.Equal(t, http.StatusOK, code)

	var second domain.UserStore
	require.NoError(t, json.Unmarshal(res.Data["userStore"], &second))
	require.Equal(t, first.ID, second.ID)

	require.NoError(t, json.Unmarshal(res.Data["userCreated"], &created))
	require.False(t, created)
}

func TestAddCustomerReactivatesSuspendedAssociation(t *testing.T) {
	env := newTestEnv(t)
	user := &domain.User{Name: "Diego", Email: "diego@shop.com", Role: domain.RoleCustomer, CompanyID: 1}
	_, err := env.users.Create(context.Background(), user)
	require.NoError(t, err)
	us := &domain.UserStore{UserID: user.ID, StoreID: 10, Status: domain.UserStoreSuspended}
	_, err = env.userStores.Create(context.Background(), us)
	require.NoError(t, err)

	body := `{"store_id":10,"email":"diego@shop.com"}`
	code, res := env.do(t, http.MethodPost, "/user-stores/add-customer", env.bearer(t, 5, domain.RoleStoreAdmin, 1), body)
	require.Equal(t, http.StatusOK, code)

	var got domain.UserStore
	require.NoError(t, json.Unmarshal(res.Data["userStore"], &got))
	require.Equal(t, us.ID, got.ID)
	require.Equal(t, domain.UserStoreActive, got.Status)
}
