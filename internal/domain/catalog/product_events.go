package catalog

import (
	"github.com/stockpos/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductStatusChanged = "ProductStatusChanged"
	EventTypeProductPriceChanged  = "ProductPriceChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		Name:            product.Name.Value(),
	}
}

// ProductPriceChangedEvent is published when pricing changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	Price     *int64 `json:"price,omitempty"`
	CostPrice *int64 `json:"cost_price,omitempty"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product) *ProductPriceChangedEvent {
	e := &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, product.ID),
	}
	if product.Price != nil {
		v := product.Price.MinorUnits()
		e.Price = &v
	}
	if product.CostPrice != nil {
		v := product.CostPrice.MinorUnits()
		e.CostPrice = &v
	}
	return e
}

// ProductStatusChangedEvent is published when a product is activated or
// deactivated
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	Active bool `json:"active"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, AggregateTypeProduct, product.ID),
		Active:          product.Active,
	}
}
