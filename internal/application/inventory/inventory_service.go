package inventory

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InventoryService is the single write path for stock levels. Every change
// appends a reason-coded movement to the ledger and updates the product
// snapshot in the same transaction, so the ledger always explains the stock.
type InventoryService struct {
	scope TransactionScope
	now   func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope) *InventoryService {
	return &InventoryService{
		scope: scope,
		now:   time.Now,
	}
}

// Adjust applies a signed stock delta to a product. The movement record and
// the new stock level are persisted atomically; an adjustment that would
// drive the stock negative is rejected and nothing is written.
func (s *InventoryService) Adjust(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	productID, err := valueobject.NewProductID(req.ProductID)
	if err != nil {
		return nil, err
	}
	reason := ledger.MovementReason(req.Reason)
	if !reason.IsValid() {
		return nil, shared.NewValidationError("reason", "unknown movement reason")
	}

	now := s.now()
	movement, err := ledger.NewStockMovement(productID, req.Delta, reason, now)
	if err != nil {
		return nil, err
	}
	if req.Note != "" {
		note, err := valueobject.NewNote(req.Note)
		if err != nil {
			return nil, err
		}
		movement = movement.WithNote(note)
	}

	var resp AdjustStockResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		updated, err := product.ApplyMovement(movement.Change, now)
		if err != nil {
			return err
		}

		if err := repos.ProductRepo().Save(ctx, &updated); err != nil {
			return err
		}
		if err := repos.MovementRepo().Append(ctx, movement); err != nil {
			return err
		}

		resp = AdjustStockResponse{
			Movement: ToMovementResponse(movement),
			Stock:    updated.Stock.Value(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns movements matching the filter, newest first
func (s *InventoryService) History(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := ledger.MovementFilter{
		From:     filter.From,
		To:       filter.To,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.ProductID != nil {
		productID, err := valueobject.NewProductID(*filter.ProductID)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.ProductID = &productID
	}
	if filter.Reason != "" {
		reason := ledger.MovementReason(filter.Reason)
		if !reason.IsValid() {
			return nil, 0, shared.NewValidationError("reason", "unknown movement reason")
		}
		domainFilter.Reason = &reason
	}

	var movements []ledger.StockMovement
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		movements, total, err = repos.MovementRepo().FindAll(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(movements), total, nil
}

// Reconcile replays a product's full movement history against an empty
// baseline and compares the result with the stored stock. A drift is
// reported, never auto-corrected; the fix is an explicit adjustment.
func (s *InventoryService) Reconcile(ctx context.Context, id int64) (*ReconcileResponse, error) {
	productID, err := valueobject.NewProductID(id)
	if err != nil {
		return nil, err
	}

	var resp *ReconcileResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		movements, err := repos.MovementRepo().FindByProduct(ctx, productID)
		if err != nil {
			return err
		}

		result := &ReconcileResponse{
			ProductID:   id,
			StoredStock: product.Stock.Value(),
		}

		reconstructed, err := ledger.ReconstructStock(valueobject.ZeroStock(), movements)
		if err != nil {
			result.Detail = err.Error()
			resp = result
			return nil
		}
		result.ReconstructedStock = reconstructed.Value()

		if err := ledger.Reconcile(productID, product.Stock, valueobject.ZeroStock(), movements); err != nil {
			result.Detail = err.Error()
		} else {
			result.Consistent = true
		}
		resp = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
