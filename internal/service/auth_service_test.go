package service

import (
	"context"
	"testing"
	"time"

	"shopd/internal/auth"
	"shopd/internal/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) (AuthService, *fakeUsersRepo, *auth.TokenService) {
	t.Helper()
	users := newFakeUsersRepo()
	companies := &fakeCompaniesRepo{byID: map[int64]*domain.Company{
		1: {ID: 1, Name: "Chilsmart"},
	}}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, companies, tokens, zap.NewNop()), users, tokens
}

func seedUser(t *testing.T, users *fakeUsersRepo, email, password, role string, companyID int64) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &domain.User{Name: "Test", Email: email, PasswordHash: hash, Role: role, CompanyID: companyID}
	_, err = users.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func TestLoginSucceedsWithSeededUser(t *testing.T) {
	svc, users, tokens := newTestAuthService(t)
	seeded := seedUser(t, users, "maria@shop.com", "secret1", domain.RoleStoreAdmin, 1)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maria@shop.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, claims.UserID)
	require.Equal(t, domain.RoleStoreAdmin, claims.Role)
	require.Equal(t, int64(1), claims.CompanyID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	seedUser(t, users, "maria@shop.com", "secret1", domain.RoleStoreAdmin, 1)

	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "maria@shop.com", Password: "wrong"})
	require.ErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	// Unknown email and wrong password are indistinguishable to the caller.
	svc, _, _ := newTestAuthService(t)
	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@shop.com", Password: "x"})
	require.ErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	seedUser(t, users, "taken@shop.com", "secret1", domain.RoleStoreAdmin, 1)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "Taken@Shop.com", Password: "secret1", CompanyID: 1,
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterRejectsUnknownCompany(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "New", Email: "new@shop.com", Password: "secret1", CompanyID: 999,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRegisterIssuesWorkingToken(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Name: "New", Email: "new@shop.com", Password: "secret1", CompanyID: 1,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleStoreAdmin, user.Role)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	u := seedUser(t, users, "maria@shop.com", "secret1", domain.RoleStoreAdmin, 1)

	require.ErrorIs(t,
		svc.ChangePassword(context.Background(), u.ID, "wrong", "newsecret"),
		auth.ErrPasswordMismatch)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "secret1", "newsecret"))
	require.NoError(t, auth.ComparePassword(u.PasswordHash, "newsecret"))
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	seedUser(t, users, "a@shop.com", "secret1", domain.RoleStoreAdmin, 1)
	b := seedUser(t, users, "b@shop.com", "secret1", domain.RoleStoreAdmin, 1)

	email := "a@shop.com"
	_, err := svc.UpdateProfile(context.Background(), b.ID, UpdateProfileRequest{Email: &email})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}
