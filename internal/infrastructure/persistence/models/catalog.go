package models

import (
	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for the Product domain entity.
// All money columns hold integer minor units.
type ProductModel struct {
	BaseModel
	Name           string  `gorm:"type:varchar(200);not null"`
	Barcode        *string `gorm:"type:varchar(50);uniqueIndex"`
	CategoryID     *int64  `gorm:"index"`
	PriceMinor     *int64
	CostPriceMinor *int64
	MinStockLevel  *int64
	MaxStockLevel  *int64
	Stock          int64 `gorm:"not null;default:0"`
	Active         bool  `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product snapshot.
// Stored values pass through the same validation as fresh input; a row that
// no longer satisfies it surfaces as an error instead of a half-built entity.
func (m *ProductModel) ToDomain() (*catalog.Product, error) {
	name, err := valueobject.NewProductName(m.Name)
	if err != nil {
		return nil, err
	}
	stock, err := valueobject.NewStockQuantity(m.Stock)
	if err != nil {
		return nil, err
	}

	p := catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       name,
		Stock:      stock,
		Active:     m.Active,
	}

	if m.Barcode != nil {
		barcode, err := valueobject.NewBarcode(*m.Barcode)
		if err != nil {
			return nil, err
		}
		p.Barcode = &barcode
	}
	if m.CategoryID != nil {
		categoryID, err := valueobject.NewCategoryID(*m.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &categoryID
	}
	if m.PriceMinor != nil {
		price := valueobject.NewMoney(*m.PriceMinor)
		p.Price = &price
	}
	if m.CostPriceMinor != nil {
		cost := valueobject.NewMoney(*m.CostPriceMinor)
		p.CostPrice = &cost
	}
	if m.MinStockLevel != nil {
		minLevel, err := valueobject.NewQuantity(*m.MinStockLevel)
		if err != nil {
			return nil, err
		}
		p.MinStockLevel = &minLevel
	}
	if m.MaxStockLevel != nil {
		maxLevel, err := valueobject.NewQuantity(*m.MaxStockLevel)
		if err != nil {
			return nil, err
		}
		p.MaxStockLevel = &maxLevel
	}

	return &p, nil
}

// FromDomain populates the persistence model from a domain Product snapshot.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name.Value()
	m.Stock = p.Stock.Value()
	m.Active = p.Active

	m.Barcode = nil
	if p.Barcode != nil {
		barcode := p.Barcode.Value()
		m.Barcode = &barcode
	}
	m.CategoryID = nil
	if p.CategoryID != nil {
		categoryID := p.CategoryID.Value()
		m.CategoryID = &categoryID
	}
	m.PriceMinor = nil
	if p.Price != nil {
		price := p.Price.MinorUnits()
		m.PriceMinor = &price
	}
	m.CostPriceMinor = nil
	if p.CostPrice != nil {
		cost := p.CostPrice.MinorUnits()
		m.CostPriceMinor = &cost
	}
	m.MinStockLevel = nil
	if p.MinStockLevel != nil {
		minLevel := p.MinStockLevel.Value()
		m.MinStockLevel = &minLevel
	}
	m.MaxStockLevel = nil
	if p.MaxStockLevel != nil {
		maxLevel := p.MaxStockLevel.Value()
		m.MaxStockLevel = &maxLevel
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
