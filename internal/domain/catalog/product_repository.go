package catalog

import (
	"context"

	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	ActiveOnly  bool
	NeedRestock bool
	Search      string
	Page        int
	PageSize    int
}

// ProductRepository defines the interface for product persistence.
// Implementations return fully-validated domain snapshots; re-validation at
// load time is their job when translating from storage.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id valueobject.ProductID) (*Product, error)

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode valueobject.Barcode) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)

	// Save creates or updates a product and assigns its ID on first save
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id valueobject.ProductID) error
}
