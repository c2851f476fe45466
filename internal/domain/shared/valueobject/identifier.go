package valueobject

import (
	"github.com/stockpos/backend/internal/domain/shared"
)

// Identifiers are positive integers assigned by the persistence boundary.
// The zero value is the "not yet persisted" sentinel: it is valid to carry
// around before the first save, but never a valid reference to another
// entity. Constructors therefore reject non-positive input; use the zero
// value directly for unpersisted entities.

// ProductID identifies a product
type ProductID struct {
	value int64
}

// NewProductID creates a ProductID from a persisted identifier
func NewProductID(value int64) (ProductID, error) {
	if value <= 0 {
		return ProductID{}, shared.NewValidationError("product_id", "must be positive")
	}
	return ProductID{value: value}, nil
}

// Value returns the raw identifier, 0 when unassigned
func (id ProductID) Value() int64 { return id.value }

// IsZero returns true for the unassigned sentinel
func (id ProductID) IsZero() bool { return id.value == 0 }

// InvoiceID identifies an invoice
type InvoiceID struct {
	value int64
}

// NewInvoiceID creates an InvoiceID from a persisted identifier
func NewInvoiceID(value int64) (InvoiceID, error) {
	if value <= 0 {
		return InvoiceID{}, shared.NewValidationError("invoice_id", "must be positive")
	}
	return InvoiceID{value: value}, nil
}

// Value returns the raw identifier, 0 when unassigned
func (id InvoiceID) Value() int64 { return id.value }

// IsZero returns true for the unassigned sentinel
func (id InvoiceID) IsZero() bool { return id.value == 0 }

// CustomerID identifies a customer
type CustomerID struct {
	value int64
}

// NewCustomerID creates a CustomerID from a persisted identifier
func NewCustomerID(value int64) (CustomerID, error) {
	if value <= 0 {
		return CustomerID{}, shared.NewValidationError("customer_id", "must be positive")
	}
	return CustomerID{value: value}, nil
}

// Value returns the raw identifier, 0 when unassigned
func (id CustomerID) Value() int64 { return id.value }

// IsZero returns true for the unassigned sentinel
func (id CustomerID) IsZero() bool { return id.value == 0 }

// StockMovementID identifies a ledger entry
type StockMovementID struct {
	value int64
}

// NewStockMovementID creates a StockMovementID from a persisted identifier
func NewStockMovementID(value int64) (StockMovementID, error) {
	if value <= 0 {
		return StockMovementID{}, shared.NewValidationError("stock_movement_id", "must be positive")
	}
	return StockMovementID{value: value}, nil
}

// Value returns the raw identifier, 0 when unassigned
func (id StockMovementID) Value() int64 { return id.value }

// IsZero returns true for the unassigned sentinel
func (id StockMovementID) IsZero() bool { return id.value == 0 }

// CategoryID identifies a product category
type CategoryID struct {
	value int64
}

// NewCategoryID creates a CategoryID from a persisted identifier
func NewCategoryID(value int64) (CategoryID, error) {
	if value <= 0 {
		return CategoryID{}, shared.NewValidationError("category_id", "must be positive")
	}
	return CategoryID{value: value}, nil
}

// Value returns the raw identifier, 0 when unassigned
func (id CategoryID) Value() int64 { return id.value }

// IsZero returns true for the unassigned sentinel
func (id CategoryID) IsZero() bool { return id.value == 0 }
