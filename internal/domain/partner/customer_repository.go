package partner

import (
	"context"

	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id valueobject.CustomerID) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, int64, error)

	// Save creates or updates a customer and assigns its ID on first save
	Save(ctx context.Context, customer *Customer) error
}
