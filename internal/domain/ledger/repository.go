package ledger

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// MovementFilter narrows movement history queries
type MovementFilter struct {
	ProductID *valueobject.ProductID
	Reason    *MovementReason
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// StockMovementRepository defines the interface for ledger persistence.
// The ledger is append-only: there is no update or delete.
type StockMovementRepository interface {
	// FindByProduct returns the full movement history of a product in
	// chronological order
	FindByProduct(ctx context.Context, productID valueobject.ProductID) ([]StockMovement, error)

	// FindAll returns movements matching the filter, newest first
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, int64, error)

	// Append persists a new movement and assigns its ID
	Append(ctx context.Context, movement *StockMovement) error

	// AppendBatch persists a batch of movements
	AppendBatch(ctx context.Context, movements []*StockMovement) error
}
