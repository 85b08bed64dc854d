package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable currency amount. Arithmetic returns new values and
// never mutates the receiver. Amounts are always >= 0.
type Money struct {
	CurrencyCode string
	Amount       decimal.Decimal
}

// NewMoney builds a Money value, rejecting empty currency codes and negative
// amounts.
func NewMoney(currencyCode string, amount decimal.Decimal) (Money, error) {
	if currencyCode == "" {
		return Money{}, fmt.Errorf("%w: currency code is required", ErrValidation)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount.StringFixed(2))
	}
	return Money{CurrencyCode: currencyCode, Amount: amount}, nil
}

// NewMoneyFromString parses a decimal string such as "1000.00".
func NewMoneyFromString(currencyCode, amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: parsing amount %q: %v", ErrValidation, amount, err)
	}
	return NewMoney(currencyCode, d)
}

func (m Money) sameCurrency(o Money) error {
	if m.CurrencyCode != o.CurrencyCode {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.CurrencyCode, o.CurrencyCode)
	}
	return nil
}

func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{CurrencyCode: m.CurrencyCode, Amount: m.Amount.Add(o.Amount)}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	result := m.Amount.Sub(o.Amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, m.Amount.StringFixed(2), o.Amount.StringFixed(2))
	}
	return Money{CurrencyCode: m.CurrencyCode, Amount: result}, nil
}

// Scale multiplies the amount by factor. Negative factors are rejected since
// they would produce a negative amount.
func (m Money) Scale(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, fmt.Errorf("%w: scale factor %s", ErrNegativeAmount, factor.String())
	}
	return Money{CurrencyCode: m.CurrencyCode, Amount: m.Amount.Mul(factor)}, nil
}

// Split divides the amount into n parts of equal value truncated to two
// decimal places; the final part absorbs the rounding remainder so the parts
// sum exactly to the original amount.
func (m Money) Split(n int) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: split count %d", ErrValidation, n)
	}
	part := m.Amount.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	parts := make([]Money, n)
	for i := 0; i < n-1; i++ {
		parts[i] = Money{CurrencyCode: m.CurrencyCode, Amount: part}
	}
	last := m.Amount.Sub(part.Mul(decimal.NewFromInt(int64(n - 1))))
	parts[n-1] = Money{CurrencyCode: m.CurrencyCode, Amount: last}
	return parts, nil
}

// Equal reports whether both currency and amount match.
func (m Money) Equal(o Money) bool {
	return m.CurrencyCode == o.CurrencyCode && m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// String renders as "USD 1000.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.CurrencyCode, m.Amount.StringFixed(2))
}
