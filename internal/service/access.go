package service

import (
	"context"
	"strconv"
	"time"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/store"

	"go.uber.org/zap"
)

// Principal is the authenticated identity behind a request, decoded from its
// bearer token.
type Principal struct {
	UserID    int64
	Email     string
	Role      string
	CompanyID int64
}

// Access applies the tenant isolation rule: a principal may touch a store
// only when the store's company is their own, unless they are a platform
// admin. The rule is ordered so a missing store is always reported as
// ErrNotFound and only an existing out-of-tenant store as ErrForbidden.
//
// Store→company lookups are read-heavy and essentially static, so they go
// through an optional KV cache; mutations of a store must call
// InvalidateStore.
type Access struct {
	resolver repository.TenantResolver
	kv       store.KV
	logger   *zap.Logger
}

const storeCompanyCacheTTL = 5 * time.Minute

func NewAccess(resolver repository.TenantResolver, kv store.KV, logger *zap.Logger) *Access {
	return &Access{resolver: resolver, kv: kv, logger: logger}
}

// CanAccessStore authorizes a principal against a target store.
func (a *Access) CanAccessStore(ctx context.Context, p Principal, storeID int64) error {
	if p.Role == domain.RolePlatformAdmin {
		return nil
	}
	companyID, err := a.storeCompanyID(ctx, storeID)
	if err != nil {
		return err
	}
	if companyID != p.CompanyID {
		a.logger.Warn("tenant access denied",
			zap.Int64("user_id", p.UserID),
			zap.Int64("company_id", p.CompanyID),
			zap.Int64("store_id", storeID),
		)
		return domain.ErrForbidden
	}
	return nil
}

// CanAccessOrder authorizes through the order's owning store and returns
// that store id for callers that need it.
func (a *Access) CanAccessOrder(ctx context.Context, p Principal, orderID int64) (int64, error) {
	storeID, err := a.resolver.StoreIDByOrderID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if err := a.CanAccessStore(ctx, p, storeID); err != nil {
		return 0, err
	}
	return storeID, nil
}

// CanAccessUserStore authorizes through the association's store.
func (a *Access) CanAccessUserStore(ctx context.Context, p Principal, userStoreID int64) (int64, error) {
	storeID, err := a.resolver.StoreIDByUserStoreID(ctx, userStoreID)
	if err != nil {
		return 0, err
	}
	if err := a.CanAccessStore(ctx, p, storeID); err != nil {
		return 0, err
	}
	return storeID, nil
}

// InvalidateStore drops the cached company mapping after a store mutation.
func (a *Access) InvalidateStore(ctx context.Context, storeID int64) {
	if a.kv == nil {
		return
	}
	if err := a.kv.Del(ctx, storeCompanyKey(storeID)); err != nil {
		a.logger.Warn("failed to invalidate store cache", zap.Int64("store_id", storeID), zap.Error(err))
	}
}

func storeCompanyKey(storeID int64) string {
	return "store_company:" + strconv.FormatInt(storeID, 10)
}

func (a *Access) storeCompanyID(ctx context.Context, storeID int64) (int64, error) {
	key := storeCompanyKey(storeID)
	if a.kv != nil {
		if cached, err := a.kv.Get(ctx, key); err == nil {
			if id, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return id, nil
			}
		}
	}

	companyID, err := a.resolver.CompanyIDByStoreID(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if a.kv != nil {
		if err := a.kv.Set(ctx, key, strconv.FormatInt(companyID, 10), storeCompanyCacheTTL); err != nil {
			a.logger.Warn("failed to cache store company", zap.Int64("store_id", storeID), zap.Error(err))
		}
	}
	return companyID, nil
}
