package service

import (
	"context"
	"testing"

	"shopd/internal/domain"
	"shopd/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAccess(kv store.KV) (*Access, *fakeResolver) {
	resolver := &fakeResolver{
		storeCompany:   map[int64]int64{10: 1, 20: 2},
		orderStore:     map[int64]int64{100: 10},
		userStoreStore: map[int64]int64{200: 20},
	}
	return NewAccess(resolver, kv, zap.NewNop()), resolver
}

func TestCanAccessStoreSameCompany(t *testing.T) {
	access, _ := newTestAccess(nil)
	p := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 1}
	require.NoError(t, access.CanAccessStore(context.Background(), p, 10))
}

func TestCanAccessStoreCrossTenant(t *testing.T) {
	access, _ := newTestAccess(nil)
	p := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 1}
	require.ErrorIs(t, access.CanAccessStore(context.Background(), p, 20), domain.ErrForbidden)
}

func TestCanAccessStoreMissingIsNotFound(t *testing.T) {
	// A nonexistent store is 404 even cross-tenant; existence wins over
	// authorization.
	access, _ := newTestAccess(nil)
	p := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 1}
	require.ErrorIs(t, access.CanAccessStore(context.Background(), p, 999), domain.ErrNotFound)
}

func TestPlatformAdminBypassesTenantCheck(t *testing.T) {
	access, resolver := newTestAccess(nil)
	p := Principal{UserID: 1, Role: domain.RolePlatformAdmin, CompanyID: 99}
	require.NoError(t, access.CanAccessStore(context.Background(), p, 10))
	require.NoError(t, access.CanAccessStore(context.Background(), p, 20))
	// The bypass short-circuits before any lookup.
	require.Zero(t, resolver.lookups)
}

func TestCanAccessOrderThroughStore(t *testing.T) {
	access, _ := newTestAccess(nil)

	own := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 1}
	storeID, err := access.CanAccessOrder(context.Background(), own, 100)
	require.NoError(t, err)
	require.Equal(t, int64(10), storeID)

	other := Principal{UserID: 2, Role: domain.RoleStoreAdmin, CompanyID: 2}
	_, err = access.CanAccessOrder(context.Background(), other, 100)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = access.CanAccessOrder(context.Background(), own, 12345)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCanAccessUserStoreThroughStore(t *testing.T) {
	access, _ := newTestAccess(nil)
	p := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 2}
	storeID, err := access.CanAccessUserStore(context.Background(), p, 200)
	require.NoError(t, err)
	require.Equal(t, int64(20), storeID)
}

func TestStoreCompanyLookupIsCached(t *testing.T) {
	kv := store.NewMemoryKV()
	access, resolver := newTestAccess(kv)
	p := Principal{UserID: 1, Role: domain.RoleStoreAdmin, CompanyID: 1}

	for i := 0; i < 3; i++ {
		require.NoError(t, access.CanAccessStore(context.Background(), p, 10))
	}
	require.Equal(t, int32(1), resolver.lookups)

	access.InvalidateStore(context.Background(), 10)
	require.NoError(t, access.CanAccessStore(context.Background(), p, 10))
	require.Equal(t, int32(2), resolver.lookups)
}
