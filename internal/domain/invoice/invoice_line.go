package invoice

import (
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InvoiceLine is one product position on an invoice. Price and cost are
// snapshots taken at transaction time so later catalog price edits never
// rewrite history. A line always belongs to exactly one invoice; the owning
// aggregate enforces that on every mutation.
type InvoiceLine struct {
	InvoiceID   valueobject.InvoiceID
	ProductID   valueobject.ProductID
	Quantity    valueobject.SalesQuantity
	PriceAtSale valueobject.Money
	CostAtSale  valueobject.Money
	Discount    valueobject.Money
}

// NewInvoiceLine creates a validated line for the given invoice
func NewInvoiceLine(
	invoiceID valueobject.InvoiceID,
	productID valueobject.ProductID,
	quantity valueobject.SalesQuantity,
	priceAtSale, costAtSale, discount valueobject.Money,
) (InvoiceLine, error) {
	if productID.IsZero() {
		return InvoiceLine{}, shared.NewValidationError("product_id", "line requires a persisted product")
	}
	if priceAtSale.IsNegative() {
		return InvoiceLine{}, shared.NewValidationError("price_at_sale", "cannot be negative")
	}
	if costAtSale.IsNegative() {
		return InvoiceLine{}, shared.NewValidationError("cost_at_sale", "cannot be negative")
	}
	if discount.IsNegative() {
		return InvoiceLine{}, shared.NewValidationError("discount", "cannot be negative")
	}
	gross, err := priceAtSale.Scale(quantity.Value())
	if err != nil {
		return InvoiceLine{}, err
	}
	if discount.GreaterThan(gross) {
		return InvoiceLine{}, shared.NewValidationError("discount", "cannot exceed the line amount")
	}

	return InvoiceLine{
		InvoiceID:   invoiceID,
		ProductID:   productID,
		Quantity:    quantity,
		PriceAtSale: priceAtSale,
		CostAtSale:  costAtSale,
		Discount:    discount,
	}, nil
}

// Amount returns priceAtSale * quantity - discount
func (l InvoiceLine) Amount() (valueobject.Money, error) {
	gross, err := l.PriceAtSale.Scale(l.Quantity.Value())
	if err != nil {
		return valueobject.Money{}, err
	}
	return gross.Subtract(l.Discount)
}

// Profit returns (priceAtSale - costAtSale) * quantity
func (l InvoiceLine) Profit() (valueobject.Money, error) {
	perUnit, err := l.PriceAtSale.Subtract(l.CostAtSale)
	if err != nil {
		return valueobject.Money{}, err
	}
	return perUnit.Scale(l.Quantity.Value())
}

// WithQuantity returns a copy with a new quantity
func (l InvoiceLine) WithQuantity(quantity valueobject.SalesQuantity) (InvoiceLine, error) {
	return NewInvoiceLine(l.InvoiceID, l.ProductID, quantity, l.PriceAtSale, l.CostAtSale, l.Discount)
}

// WithDiscount returns a copy with a new discount
func (l InvoiceLine) WithDiscount(discount valueobject.Money) (InvoiceLine, error) {
	return NewInvoiceLine(l.InvoiceID, l.ProductID, l.Quantity, l.PriceAtSale, l.CostAtSale, discount)
}
