package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/stockpos/backend/internal/application/inventory"
	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/ledger"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions. A stock adjustment updates the product snapshot
// and appends the ledger movement in one transaction, or not at all.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope.
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides repositories scoped to one transaction.
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormInventoryRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the ledger repository scoped to the current transaction.
func (r *gormInventoryRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
