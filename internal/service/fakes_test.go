package service

import (
	"context"
	"sync/atomic"

	"shopd/internal/domain"
	"shopd/internal/repository"
)

type fakeResolver struct {
	storeCompany   map[int64]int64
	orderStore     map[int64]int64
	userStoreStore map[int64]int64
	lookups        int32
}

func (f *fakeResolver) CompanyIDByStoreID(ctx context.Context, storeID int64) (int64, error) {
	atomic.AddInt32(&f.lookups, 1)
	id, ok := f.storeCompany[storeID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (f *fakeResolver) StoreIDByOrderID(ctx context.Context, orderID int64) (int64, error) {
	id, ok := f.orderStore[orderID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (f *fakeResolver) StoreIDByUserStoreID(ctx context.Context, userStoreID int64) (int64, error) {
	id, ok := f.userStoreStore[userStoreID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (f *fakeResolver) CompanyIDByUserID(ctx context.Context, userID int64) (int64, error) {
	return 0, domain.ErrNotFound
}

type fakeUsersRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUsersRepo) add(u *domain.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context, filters repository.UserFilters) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	f.nextID++
	u.ID = f.nextID
	f.add(u)
	return u.ID, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, upd repository.UserUpdate) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		delete(f.byEmail, u.Email)
		u.Email = *upd.Email
		f.byEmail[u.Email] = u
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

type fakeCompaniesRepo struct {
	byID map[int64]*domain.Company
}

func (f *fakeCompaniesRepo) Get(ctx context.Context, id int64) (*domain.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompaniesRepo) List(ctx context.Context) ([]*domain.Company, error) {
	var out []*domain.Company
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompaniesRepo) Create(ctx context.Context, c *domain.Company) (int64, error) {
	id := int64(len(f.byID) + 1)
	c.ID = id
	f.byID[id] = c
	return id, nil
}

func (f *fakeCompaniesRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

type fakeProductsRepo struct {
	byID map[int64]*domain.Product
}

func (f *fakeProductsRepo) List(ctx context.Context, storeID int64, filters repository.ProductFilters) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.byID {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductsRepo) GetForStore(ctx context.Context, storeID, productID int64) (*domain.Product, error) {
	p, ok := f.byID[productID]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *domain.Product) (int64, error) {
	id := int64(len(f.byID) + 1)
	p.ID = id
	f.byID[id] = p
	return id, nil
}

func (f *fakeProductsRepo) Update(ctx context.Context, id int64, upd repository.ProductUpdate) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

type fakeOrdersRepo struct {
	byID   map[int64]*domain.Order
	nextID int64
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{byID: map[int64]*domain.Order{}}
}

func (f *fakeOrdersRepo) List(ctx context.Context, storeID int64, filters repository.OrderFilters) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.byID {
		if o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrdersRepo) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (int64, error) {
	f.nextID++
	o.ID = f.nextID
	for i := range items {
		items[i].OrderID = o.ID
		items[i].ID = int64(i + 1)
	}
	o.Items = items
	f.byID[o.ID] = o
	return o.ID, nil
}

func (f *fakeOrdersRepo) Update(ctx context.Context, id int64, upd repository.OrderUpdate) error {
	o, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Status != nil {
		o.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		o.PaymentStatus = *upd.PaymentStatus
	}
	if upd.CustomerID != nil {
		o.CustomerID = upd.CustomerID
	}
	return nil
}

func (f *fakeOrdersRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
