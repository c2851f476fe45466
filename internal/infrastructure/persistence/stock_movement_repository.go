package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
	"github.com/stockpos/backend/internal/infrastructure/persistence/models"
)

// GormStockMovementRepository implements ledger.StockMovementRepository using
// GORM. The ledger is append-only; this type deliberately has no update or
// delete path.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByProduct returns the full movement history of a product in
// chronological order
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID valueobject.ProductID) ([]ledger.StockMovement, error) {
	var rows []models.StockMovementModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID.Value()).
		Order("occurred_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainMovements(rows)
}

// FindAll returns movements matching the filter, newest first
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter ledger.MovementFilter) ([]ledger.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", filter.ProductID.Value())
	}
	if filter.Reason != nil {
		query = query.Where("reason = ?", string(*filter.Reason))
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StockMovementModel
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("occurred_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	movements, err := toDomainMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// Append persists a new movement and assigns its ID
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *ledger.StockMovement) error {
	model := models.StockMovementModelFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	movement.ID = model.ID
	movement.CreatedAt = model.CreatedAt
	movement.UpdatedAt = model.UpdatedAt
	return nil
}

// AppendBatch persists a batch of movements
func (r *GormStockMovementRepository) AppendBatch(ctx context.Context, movements []*ledger.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	rows := make([]*models.StockMovementModel, 0, len(movements))
	for _, movement := range movements {
		rows = append(rows, models.StockMovementModelFromDomain(movement))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	for i, movement := range movements {
		movement.ID = rows[i].ID
		movement.CreatedAt = rows[i].CreatedAt
		movement.UpdatedAt = rows[i].UpdatedAt
	}
	return nil
}

func toDomainMovements(rows []models.StockMovementModel) ([]ledger.StockMovement, error) {
	movements := make([]ledger.StockMovement, 0, len(rows))
	for i := range rows {
		movement, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)
	}
	return movements, nil
}

var _ ledger.StockMovementRepository = (*GormStockMovementRepository)(nil)
