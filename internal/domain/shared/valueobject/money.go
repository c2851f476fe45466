package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/stockpos/backend/internal/domain/shared"
)

// minorPerUnit is the number of minor units in one major currency unit (cents).
const minorPerUnit = 100

// percentScale is the internal precision for display percentages.
const percentScale = 4

// Money is a value object representing a monetary amount as a signed integer
// count of minor currency units. All arithmetic stays in minor units so no
// precision is ever lost; conversion to a decimal is a read-only display
// projection. It is immutable - all operations return new Money instances.
type Money struct {
	amount int64
}

// NewMoney creates Money from an amount in minor units (cents)
func NewMoney(minorUnits int64) Money {
	return Money{amount: minorUnits}
}

// NewMoneyFromString creates Money from a decimal string like "12.50"
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, shared.NewValidationError("amount", fmt.Sprintf("invalid amount string %q", s))
	}
	minor := d.Mul(decimal.NewFromInt(minorPerUnit))
	if !minor.IsInteger() {
		return Money{}, shared.NewValidationError("amount", fmt.Sprintf("amount %q has sub-minor-unit precision", s))
	}
	if minor.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 || minor.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return Money{}, shared.ErrOverflow
	}
	return Money{amount: minor.IntPart()}, nil
}

// ZeroMoney returns a zero-value Money
func ZeroMoney() Money {
	return Money{}
}

// MinorUnits returns the raw amount in minor units
func (m Money) MinorUnits() int64 {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Add returns a new Money with the sum of both amounts.
// Returns ErrOverflow if the result does not fit in an int64.
func (m Money) Add(other Money) (Money, error) {
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, shared.ErrOverflow
	}
	return Money{amount: sum}, nil
}

// Subtract returns a new Money with the difference.
// Returns ErrOverflow if the result does not fit in an int64.
func (m Money) Subtract(other Money) (Money, error) {
	if other.amount == math.MinInt64 {
		return Money{}, shared.ErrOverflow
	}
	return m.Add(Money{amount: -other.amount})
}

// Scale returns a new Money multiplied by an integer quantity.
// Returns ErrOverflow if the result does not fit in an int64.
func (m Money) Scale(factor int64) (Money, error) {
	if m.amount == 0 || factor == 0 {
		return Money{}, nil
	}
	product := m.amount * factor
	if product/factor != m.amount {
		return Money{}, shared.ErrOverflow
	}
	return Money{amount: product}, nil
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() (Money, error) {
	if m.amount == math.MinInt64 {
		return Money{}, shared.ErrOverflow
	}
	return Money{amount: -m.amount}, nil
}

// Equals returns true if both Money values are equal
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// GreaterThan returns true if this Money is greater than the other
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// Decimal returns the amount as a decimal in major units.
// Read-only display projection; never feed it back into arithmetic.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, 0).Div(decimal.NewFromInt(minorPerUnit))
}

// String returns the amount formatted in major units with two decimals
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// PercentOf returns (m / base) * 100 as a display percentage, rounded half-up
// to four internal digits. The second return is false when base is zero.
func (m Money) PercentOf(base Money) (Percent, bool) {
	if base.amount == 0 {
		return Percent{}, false
	}
	ratio := decimal.New(m.amount, 0).Div(decimal.New(base.amount, 0)).Mul(decimal.NewFromInt(100))
	return Percent{value: ratio.Round(percentScale)}, true
}

// Percent is a display-only percentage with fixed internal scale.
// Formatting always uses one decimal digit so output is deterministic.
type Percent struct {
	value decimal.Decimal
}

// Decimal returns the percentage value at internal precision
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// String returns the percentage with one decimal digit, half-up
func (p Percent) String() string {
	return p.value.Round(1).StringFixed(1)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount)
}

// UnmarshalJSON implements json.Unmarshaler. Amounts travel as integer minor
// units on the wire, never as floats.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid money amount: %w", err)
	}
	m.amount = v
	return nil
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.amount, nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.amount = v
	case int:
		m.amount = int64(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	return nil
}
