package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42, "waldo@chilsmart.com", "platform-admin", 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "waldo@chilsmart.com", claims.Email)
	require.Equal(t, "platform-admin", claims.Role)
	require.Equal(t, int64(7), claims.CompanyID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue(1, "a@b.com", "customer", 1)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	token, err := svc.Issue(1, "a@b.com", "customer", 1)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	_, err := svc.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractFromHeader(t *testing.T) {
	token, ok := ExtractFromHeader("Bearer abc123")
	require.True(t, ok)
	require.Equal(t, "abc123", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc123", "abc123"} {
		_, ok := ExtractFromHeader(header)
		require.False(t, ok, header)
	}
}
