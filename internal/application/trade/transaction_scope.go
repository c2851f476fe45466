package trade

import (
	"context"

	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories an
// invoice commit touches. Commit writes the invoice, the derived stock
// movements and the adjusted product snapshots; they land in one database
// transaction or not at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() invoice.InvoiceRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the ledger repository scoped to the current transaction
	MovementRepo() ledger.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Useful for tests.
type NoOpTransactionScope struct {
	invoiceRepo  invoice.InvoiceRepository
	productRepo  catalog.ProductRepository
	movementRepo ledger.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo invoice.InvoiceRepository,
	productRepo catalog.ProductRepository,
	movementRepo ledger.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() invoice.InvoiceRepository {
	return s.invoiceRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the ledger repository
func (s *NoOpTransactionScope) MovementRepo() ledger.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
