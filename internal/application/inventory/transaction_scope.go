package inventory

import (
	"context"

	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories a stock
// change touches. A stock adjustment writes the product snapshot and appends
// the ledger movement; both land in the same database transaction or neither
// does.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the ledger repository scoped to the current transaction
	MovementRepo() ledger.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Useful for tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	movementRepo ledger.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, movementRepo ledger.StockMovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, movementRepo: movementRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
