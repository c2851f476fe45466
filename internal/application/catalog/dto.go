package catalog

import (
	"time"

	"github.com/stockpos/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Barcode       string `json:"barcode" binding:"omitempty,min=4,max=50"`
	CategoryID    *int64 `json:"category_id" binding:"omitempty,min=1"`
	Price         *int64 `json:"price" binding:"omitempty,min=0"`
	CostPrice     *int64 `json:"cost_price" binding:"omitempty,min=0"`
	MinStockLevel *int64 `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel *int64 `json:"max_stock_level" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Barcode       *string `json:"barcode" binding:"omitempty,max=50"`
	CategoryID    *int64  `json:"category_id" binding:"omitempty,min=1"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	CostPrice     *int64  `json:"cost_price" binding:"omitempty,min=0"`
	MinStockLevel *int64  `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel *int64  `json:"max_stock_level" binding:"omitempty,min=0"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search      string `form:"search"`
	ActiveOnly  bool   `form:"active_only"`
	NeedRestock bool   `form:"need_restock"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses.
// All monetary amounts are integer minor units.
type ProductResponse struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Barcode             *string   `json:"barcode,omitempty"`
	CategoryID          *int64    `json:"category_id,omitempty"`
	Price               *int64    `json:"price,omitempty"`
	CostPrice           *int64    `json:"cost_price,omitempty"`
	MinStockLevel       *int64    `json:"min_stock_level,omitempty"`
	MaxStockLevel       *int64    `json:"max_stock_level,omitempty"`
	Stock               int64     `json:"stock"`
	StockStatus         string    `json:"stock_status"`
	NeedsRestock        bool      `json:"needs_restock"`
	RecommendedOrderQty *int64    `json:"recommended_order_quantity,omitempty"`
	Profit              *int64    `json:"profit,omitempty"`
	ProfitMargin        *string   `json:"profit_margin,omitempty"`
	MarkupPercentage    *string   `json:"markup_percentage,omitempty"`
	Active              bool      `json:"active"`
	CanBeSold           bool      `json:"can_be_sold"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name.Value(),
		Stock:        p.Stock.Value(),
		StockStatus:  string(p.StockStatus()),
		NeedsRestock: p.NeedsRestock(),
		Active:       p.Active,
		CanBeSold:    p.CanBeSold(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Barcode != nil {
		v := p.Barcode.Value()
		resp.Barcode = &v
	}
	if p.CategoryID != nil {
		v := p.CategoryID.Value()
		resp.CategoryID = &v
	}
	if p.Price != nil {
		v := p.Price.MinorUnits()
		resp.Price = &v
	}
	if p.CostPrice != nil {
		v := p.CostPrice.MinorUnits()
		resp.CostPrice = &v
	}
	if p.MinStockLevel != nil {
		v := p.MinStockLevel.Value()
		resp.MinStockLevel = &v
	}
	if p.MaxStockLevel != nil {
		v := p.MaxStockLevel.Value()
		resp.MaxStockLevel = &v
	}
	if rec := p.RecommendedOrderQuantity(); rec != nil {
		v := rec.Value()
		resp.RecommendedOrderQty = &v
	}
	if profit, ok := p.Profit(); ok {
		v := profit.MinorUnits()
		resp.Profit = &v
	}
	if margin, ok := p.ProfitMargin(); ok {
		v := margin.String()
		resp.ProfitMargin = &v
	}
	if markup, ok := p.MarkupPercentage(); ok {
		v := markup.String()
		resp.MarkupPercentage = &v
	}
	return resp
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
