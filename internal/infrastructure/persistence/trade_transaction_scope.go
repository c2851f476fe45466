package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/stockpos/backend/internal/application/trade"
	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/ledger"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Committing an invoice touches the invoice, every product on
// it and the ledger; all of it lands atomically or rolls back together.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

// gormTradeRepositories provides repositories scoped to one transaction.
type gormTradeRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction.
func (r *gormTradeRepositories) InvoiceRepo() invoice.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTradeRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the ledger repository scoped to the current transaction.
func (r *gormTradeRepositories) MovementRepo() ledger.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
