package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Chil2026*")
	require.NoError(t, err)
	require.NotEqual(t, "Chil2026*", hash)

	require.NoError(t, ComparePassword(hash, "Chil2026*"))
	require.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestComparePasswordBadHash(t *testing.T) {
	require.ErrorIs(t, ComparePassword("not-a-hash", "anything"), ErrPasswordMismatch)
}
