package catalog

import (
	"time"

	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// StockStatus classifies the current stock against the configured thresholds
type StockStatus string

const (
	StockStatusOutOfStock  StockStatus = "OUT_OF_STOCK"
	StockStatusLowStock    StockStatus = "LOW_STOCK"
	StockStatusNormal      StockStatus = "NORMAL"
	StockStatusOverstocked StockStatus = "OVERSTOCKED"
)

// Product represents a catalog entry: identity, pricing and current stock.
// It is an immutable snapshot - every mutation returns a new Product and
// leaves the receiver untouched. Stock is only ever changed by applying a
// reconciled stock movement; the callers that own the ledger are responsible
// for creating the movement alongside the new snapshot.
type Product struct {
	shared.BaseEntity
	Name          valueobject.ProductName
	Barcode       *valueobject.Barcode
	CategoryID    *valueobject.CategoryID
	Price         *valueobject.Money
	CostPrice     *valueobject.Money
	MinStockLevel *valueobject.Quantity
	MaxStockLevel *valueobject.Quantity
	Stock         valueobject.StockQuantity
	Active        bool

	events []shared.DomainEvent
}

// NewProduct creates a new active product with no stock
func NewProduct(name valueobject.ProductName, now time.Time) Product {
	p := Product{
		BaseEntity: shared.NewBaseEntity(now),
		Name:       name,
		Stock:      valueobject.ZeroStock(),
		Active:     true,
	}
	return p.withEvent(NewProductCreatedEvent(&p))
}

// ProductIDRef returns the product's identifier as a typed reference.
// Zero for an unpersisted product.
func (p Product) ProductIDRef() valueobject.ProductID {
	if !p.IsPersisted() {
		return valueobject.ProductID{}
	}
	id, _ := valueobject.NewProductID(p.ID)
	return id
}

// StockStatus computes the stock state from the configured thresholds.
// OUT_OF_STOCK always wins over LOW_STOCK; without thresholds the status is
// NORMAL unless the shelf is empty.
func (p Product) StockStatus() StockStatus {
	if p.Stock.IsZero() {
		return StockStatusOutOfStock
	}
	if p.MinStockLevel != nil && p.Stock.Value() <= p.MinStockLevel.Value() {
		return StockStatusLowStock
	}
	if p.MaxStockLevel != nil && p.Stock.Value() > p.MaxStockLevel.Value() {
		return StockStatusOverstocked
	}
	return StockStatusNormal
}

// NeedsRestock returns true when the product is out of stock or low
func (p Product) NeedsRestock() bool {
	status := p.StockStatus()
	return status == StockStatusOutOfStock || status == StockStatusLowStock
}

// RecommendedOrderQuantity returns how many units to order to reach the
// configured maximum, or nil when no maximum is configured.
func (p Product) RecommendedOrderQuantity() *valueobject.Quantity {
	if p.MaxStockLevel == nil {
		return nil
	}
	gap := p.MaxStockLevel.Value() - p.Stock.Value()
	if gap < 0 {
		gap = 0
	}
	q, err := valueobject.NewQuantity(gap)
	if err != nil {
		return nil
	}
	return &q
}

// Profit returns price - costPrice per unit. The second return is false when
// either price is not set.
func (p Product) Profit() (valueobject.Money, bool) {
	if p.Price == nil || p.CostPrice == nil {
		return valueobject.Money{}, false
	}
	profit, err := p.Price.Subtract(*p.CostPrice)
	if err != nil {
		return valueobject.Money{}, false
	}
	return profit, true
}

// ProfitMargin returns profit as a display percentage of the selling price.
// The second return is false when pricing is incomplete or price is zero.
func (p Product) ProfitMargin() (valueobject.Percent, bool) {
	profit, ok := p.Profit()
	if !ok {
		return valueobject.Percent{}, false
	}
	return profit.PercentOf(*p.Price)
}

// MarkupPercentage returns profit as a display percentage of the cost price.
// The second return is false when pricing is incomplete or cost is zero.
func (p Product) MarkupPercentage() (valueobject.Percent, bool) {
	profit, ok := p.Profit()
	if !ok {
		return valueobject.Percent{}, false
	}
	return profit.PercentOf(*p.CostPrice)
}

// CanBeSold returns true when the product is active, priced and in stock
func (p Product) CanBeSold() bool {
	return p.Active && !p.Stock.IsZero() && p.Price != nil
}

// UpdateStock replaces the stock count with a reconciled value
func (p Product) UpdateStock(stock valueobject.StockQuantity, now time.Time) Product {
	p.Stock = stock
	p.BaseEntity = p.Touched(now)
	return p
}

// AddStock returns a copy with the stock increased by q
func (p Product) AddStock(q valueobject.Quantity, now time.Time) (Product, error) {
	next, err := p.Stock.Add(q)
	if err != nil {
		return Product{}, err
	}
	p.Stock = next
	p.BaseEntity = p.Touched(now)
	return p, nil
}

// ReduceStock returns a copy with the stock decreased by q.
// Reducing below zero is rejected, not clamped.
func (p Product) ReduceStock(q valueobject.Quantity, now time.Time) (Product, error) {
	next, err := p.Stock.Reduce(q)
	if err != nil {
		return Product{}, err
	}
	p.Stock = next
	p.BaseEntity = p.Touched(now)
	return p, nil
}

// ApplyMovement returns a copy with the stock adjusted by a signed ledger
// delta. The caller owns the matching StockMovement record.
func (p Product) ApplyMovement(change valueobject.QuantityChange, now time.Time) (Product, error) {
	next, err := p.Stock.Apply(change)
	if err != nil {
		return Product{}, err
	}
	p.Stock = next
	p.BaseEntity = p.Touched(now)
	return p, nil
}

// RecordSale reduces the stock by a sold quantity
func (p Product) RecordSale(q valueobject.SalesQuantity, now time.Time) (Product, error) {
	sold, err := valueobject.NewQuantity(q.Value())
	if err != nil {
		return Product{}, err
	}
	return p.ReduceStock(sold, now)
}

// UpdatePricing replaces the selling and cost prices. Either may be nil to
// leave the product unpriced; negative prices are rejected.
func (p Product) UpdatePricing(price, costPrice *valueobject.Money, now time.Time) (Product, error) {
	if price != nil && price.IsNegative() {
		return Product{}, shared.NewValidationError("price", "cannot be negative")
	}
	if costPrice != nil && costPrice.IsNegative() {
		return Product{}, shared.NewValidationError("cost_price", "cannot be negative")
	}
	p.Price = price
	p.CostPrice = costPrice
	p.BaseEntity = p.Touched(now)
	return p.withEvent(NewProductPriceChangedEvent(&p)), nil
}

// Rename replaces the display name
func (p Product) Rename(name valueobject.ProductName, now time.Time) Product {
	p.Name = name
	p.BaseEntity = p.Touched(now)
	return p
}

// SetBarcode replaces the barcode; nil removes it
func (p Product) SetBarcode(barcode *valueobject.Barcode, now time.Time) Product {
	p.Barcode = barcode
	p.BaseEntity = p.Touched(now)
	return p
}

// SetCategory replaces the category reference; nil removes it
func (p Product) SetCategory(categoryID *valueobject.CategoryID, now time.Time) Product {
	p.CategoryID = categoryID
	p.BaseEntity = p.Touched(now)
	return p
}

// SetStockLevels replaces the restock thresholds; nil disables a threshold.
// Min must not exceed max when both are set.
func (p Product) SetStockLevels(min, max *valueobject.Quantity, now time.Time) (Product, error) {
	if min != nil && max != nil && min.Value() > max.Value() {
		return Product{}, shared.NewValidationError("stock_levels", "minimum cannot exceed maximum")
	}
	p.MinStockLevel = min
	p.MaxStockLevel = max
	p.BaseEntity = p.Touched(now)
	return p, nil
}

// Activate returns an active copy of the product
func (p Product) Activate(now time.Time) (Product, error) {
	if p.Active {
		return Product{}, shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Active = true
	p.BaseEntity = p.Touched(now)
	return p.withEvent(NewProductStatusChangedEvent(&p)), nil
}

// Deactivate returns an inactive copy of the product
func (p Product) Deactivate(now time.Time) (Product, error) {
	if !p.Active {
		return Product{}, shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Active = false
	p.BaseEntity = p.Touched(now)
	return p.withEvent(NewProductStatusChangedEvent(&p)), nil
}

// DomainEvents returns the events recorded since the snapshot was loaded
func (p Product) DomainEvents() []shared.DomainEvent {
	return p.events
}

// ClearDomainEvents returns a copy with the pending events drained
func (p Product) ClearDomainEvents() Product {
	p.events = nil
	return p
}

// withEvent appends an event without sharing the backing array with the
// snapshot the copy was derived from.
func (p Product) withEvent(event shared.DomainEvent) Product {
	events := make([]shared.DomainEvent, 0, len(p.events)+1)
	events = append(events, p.events...)
	events = append(events, event)
	p.events = events
	return p
}
