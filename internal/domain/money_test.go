package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount string) Money {
	t.Helper()
	m, err := NewMoneyFromString("USD", amount)
	require.NoError(t, err)
	return m
}

func TestNewMoney_RejectsNegative(t *testing.T) {
	_, err := NewMoney("USD", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestNewMoney_RejectsEmptyCurrency(t *testing.T) {
	_, err := NewMoney("", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMoney_AddSubRoundTrip(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"1000.00", "50.00"},
		{"0.01", "0.01"},
		{"999999.99", "0.99"},
		{"33.33", "33.34"},
	}
	for _, tc := range cases {
		a := usd(t, tc.a)
		b := usd(t, tc.b)

		sum, err := a.Add(b)
		require.NoError(t, err)
		back, err := sum.Sub(b)
		require.NoError(t, err)
		assert.True(t, back.Equal(a), "(%s + %s) - %s should equal %s, got %s", a, b, b, a, back)
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	a := usd(t, "10.00")
	b, err := NewMoneyFromString("EUR", "10.00")
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_SubNegativeResult(t *testing.T) {
	a := usd(t, "10.00")
	b := usd(t, "20.00")
	_, err := a.Sub(b)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMoney_ScaleRejectsNegativeFactor(t *testing.T) {
	a := usd(t, "10.00")
	_, err := a.Scale(decimal.NewFromInt(-2))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMoney_Split_ExactSum(t *testing.T) {
	cases := []struct {
		total string
		n     int
		parts []string
	}{
		{"1000.00", 2, []string{"500.00", "500.00"}},
		{"100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"0.05", 4, []string{"0.01", "0.01", "0.01", "0.02"}},
		{"10.00", 1, []string{"10.00"}},
	}
	for _, tc := range cases {
		total := usd(t, tc.total)
		parts, err := total.Split(tc.n)
		require.NoError(t, err)
		require.Len(t, parts, tc.n)

		sum := Money{CurrencyCode: "USD"}
		for i, p := range parts {
			assert.Equal(t, tc.parts[i], p.Amount.StringFixed(2), "part %d of %s/%d", i, tc.total, tc.n)
			sum, err = sum.Add(p)
			require.NoError(t, err)
		}
		assert.True(t, sum.Equal(total), "parts of %s/%d should sum to total, got %s", tc.total, tc.n, sum)
	}
}

func TestMoney_Split_InvalidCount(t *testing.T) {
	_, err := usd(t, "10.00").Split(0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMoney_ImmutableArithmetic(t *testing.T) {
	a := usd(t, "10.00")
	b := usd(t, "5.00")
	_, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "10.00", a.Amount.StringFixed(2), "receiver must not change")
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "USD 1000.00", usd(t, "1000.00").String())
}
