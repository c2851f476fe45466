package valueobject

import (
	"fmt"

	"github.com/stockpos/backend/internal/domain/shared"
)

// MaxQuantity bounds every quantity value object. It is far above any
// realistic single-product count and keeps Money.Scale away from overflow.
const MaxQuantity = 1_000_000

// MaxQuantityChange bounds a single ledger delta.
const MaxQuantityChange = 100_000

// Quantity is a non-negative bounded item count.
// It is immutable - all operations return new instances.
type Quantity struct {
	value int64
}

// NewQuantity creates a new Quantity
func NewQuantity(value int64) (Quantity, error) {
	if value < 0 {
		return Quantity{}, shared.NewValidationError("quantity", "cannot be negative")
	}
	if value > MaxQuantity {
		return Quantity{}, shared.NewValidationError("quantity", fmt.Sprintf("cannot exceed %d", int64(MaxQuantity)))
	}
	return Quantity{value: value}, nil
}

// ZeroQuantity returns a zero quantity
func ZeroQuantity() Quantity {
	return Quantity{}
}

// Value returns the raw count
func (q Quantity) Value() int64 {
	return q.value
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.value == 0
}

// IsPositive returns true if the quantity is positive
func (q Quantity) IsPositive() bool {
	return q.value > 0
}

// StockQuantity is the quantity of a product on hand. It can never go
// negative; an outbound change larger than the current stock is rejected,
// not clamped.
type StockQuantity struct {
	value int64
}

// NewStockQuantity creates a new StockQuantity
func NewStockQuantity(value int64) (StockQuantity, error) {
	if value < 0 {
		return StockQuantity{}, shared.NewValidationError("stock", "cannot be negative")
	}
	if value > MaxQuantity {
		return StockQuantity{}, shared.NewValidationError("stock", fmt.Sprintf("cannot exceed %d", int64(MaxQuantity)))
	}
	return StockQuantity{value: value}, nil
}

// ZeroStock returns an empty stock quantity
func ZeroStock() StockQuantity {
	return StockQuantity{}
}

// Value returns the raw count on hand
func (s StockQuantity) Value() int64 {
	return s.value
}

// IsZero returns true if nothing is on hand
func (s StockQuantity) IsZero() bool {
	return s.value == 0
}

// Add returns the stock increased by q
func (s StockQuantity) Add(q Quantity) (StockQuantity, error) {
	return NewStockQuantity(s.value + q.value)
}

// Reduce returns the stock decreased by q. Reducing below zero is rejected
// with ErrInsufficientStock so an attempted over-sale stays visible instead
// of being clamped away.
func (s StockQuantity) Reduce(q Quantity) (StockQuantity, error) {
	if q.value > s.value {
		return StockQuantity{}, shared.ErrInsufficientStock
	}
	return StockQuantity{value: s.value - q.value}, nil
}

// Apply returns the stock after a signed ledger delta.
// Returns ErrInsufficientStock if the delta would drive the stock negative.
func (s StockQuantity) Apply(c QuantityChange) (StockQuantity, error) {
	next := s.value + c.value
	if next < 0 {
		return StockQuantity{}, shared.ErrInsufficientStock
	}
	return NewStockQuantity(next)
}

// SalesQuantity is the positive number of units on an invoice line.
type SalesQuantity struct {
	value int64
}

// NewSalesQuantity creates a new SalesQuantity
func NewSalesQuantity(value int64) (SalesQuantity, error) {
	if value <= 0 {
		return SalesQuantity{}, shared.NewValidationError("sales_quantity", "must be positive")
	}
	if value > MaxQuantity {
		return SalesQuantity{}, shared.NewValidationError("sales_quantity", fmt.Sprintf("cannot exceed %d", int64(MaxQuantity)))
	}
	return SalesQuantity{value: value}, nil
}

// Value returns the raw count
func (q SalesQuantity) Value() int64 {
	return q.value
}

// QuantityChange is a signed, non-zero, bounded ledger delta.
// The sign encodes direction: positive is inbound, negative is outbound.
type QuantityChange struct {
	value int64
}

// NewQuantityChange creates a new QuantityChange
func NewQuantityChange(value int64) (QuantityChange, error) {
	if value == 0 {
		return QuantityChange{}, shared.ErrInvalidMovement
	}
	if value > MaxQuantityChange || value < -MaxQuantityChange {
		return QuantityChange{}, shared.ErrInvalidMovement
	}
	return QuantityChange{value: value}, nil
}

// Value returns the signed delta
func (c QuantityChange) Value() int64 {
	return c.value
}

// IsInbound returns true when the delta adds stock
func (c QuantityChange) IsInbound() bool {
	return c.value > 0
}

// IsOutbound returns true when the delta removes stock
func (c QuantityChange) IsOutbound() bool {
	return c.value < 0
}

// Magnitude returns the absolute size of the delta
func (c QuantityChange) Magnitude() int64 {
	if c.value < 0 {
		return -c.value
	}
	return c.value
}
