package domain

import (
	"fmt"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyDecimalPlaces is the number of minor-unit digits all ledger amounts
// are kept at. Every Money value is exact to this scale; binary floats are
// never involved.
const MoneyDecimalPlaces = 2

// moneyMaxAbs bounds the magnitude a Money value may reach (10^15 major
// units). Anything beyond it fails with ErrOverflow instead of silently
// truncating.
var moneyMaxAbs = decimal.New(1, 15)

// Money is a fixed-precision monetary value. The zero value is usable and
// represents zero.
type Money struct {
	value decimal.Decimal
}

// NewMoney builds a Money from a decimal, rounding to the minor unit using
// round-half-up and rejecting values beyond the supported magnitude.
func NewMoney(value decimal.Decimal) (Money, error) {
	rounded := roundHalfUp(value)
	if rounded.Abs().GreaterThanOrEqual(moneyMaxAbs) {
		return Money{}, fmt.Errorf("%w: %s exceeds supported magnitude", apperrors.ErrOverflow, value.String())
	}
	return Money{value: rounded}, nil
}

// NewMoneyFromString parses a decimal string ("150.00") into Money.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrValidation, s)
	}
	return NewMoney(d)
}

// MoneyFromStored wraps a decimal read back from persistence without
// revalidating it. Stored balances and amounts were validated on the way in.
func MoneyFromStored(value decimal.Decimal) Money {
	return Money{value: value}
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{value: decimal.Zero}
}

// roundHalfUp rounds to the minor unit. Ledger amounts are non-negative
// magnitudes, for which shopspring's half-away-from-zero Round is exactly
// round-half-up. This rule decides the cents charged after a discount.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyDecimalPlaces)
}

// Add returns m + other, failing with ErrOverflow past the supported magnitude.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.value.Add(other.value))
}

// Sub returns m - other, failing with ErrOverflow past the supported magnitude.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.value.Sub(other.value))
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{value: m.value.Neg()}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	return Money{value: m.value.Abs()}
}

// PercentageOf returns percentage% of m, rounded half-up to the minor unit.
func (m Money) PercentageOf(percentage decimal.Decimal) (Money, error) {
	raw := m.value.Mul(percentage).Div(decimal.NewFromInt(100))
	return NewMoney(raw)
}

func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

// Cmp compares m to other: -1 if less, 0 if equal, +1 if greater.
func (m Money) Cmp(other Money) int {
	return m.value.Cmp(other.value)
}

// Decimal exposes the underlying decimal value, e.g. for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// Display renders the amount with exactly MoneyDecimalPlaces digits ("150.00").
func (m Money) Display() string {
	return m.value.StringFixed(MoneyDecimalPlaces)
}

func (m Money) String() string {
	return m.Display()
}

// MarshalJSON renders Money as a JSON number string, matching decimal.Decimal.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON parses a JSON number or string into Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
