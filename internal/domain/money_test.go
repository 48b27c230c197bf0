package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"899.99", 89999},
		{"29.99", 2999},
		{"12", 1200},
		{"12.3", 1230},
		{"0.05", 5},
		{"-4.50", -450},
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}

	_, err := ParseMoney("")
	require.Error(t, err)
	_, err = ParseMoney("abc")
	require.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	require.Equal(t, "899.99", Money(89999).String())
	require.Equal(t, "0.05", Money(5).String())
	require.Equal(t, "-4.50", Money(-450).String())
	require.Equal(t, "0.00", Money(0).String())
}

func TestMoneyMulExact(t *testing.T) {
	// 3 * 29.99 must be exactly 89.97; floats would drift.
	require.Equal(t, Money(8997), Money(2999).Mul(3))
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Money(129999))
	require.NoError(t, err)
	require.Equal(t, "1299.99", string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"45.99"`), &m))
	require.Equal(t, Money(4599), m)
	require.NoError(t, json.Unmarshal([]byte(`18.99`), &m))
	require.Equal(t, Money(1899), m)
}

func TestMoneyScanNumeric(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("599.99")))
	require.Equal(t, Money(59999), m)

	v, err := Money(24999).Value()
	require.NoError(t, err)
	require.Equal(t, "249.99", v)
}
