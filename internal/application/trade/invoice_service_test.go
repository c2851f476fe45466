package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// MockInvoiceRepository is a mock implementation of invoice.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id valueobject.InvoiceID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]invoice.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindCommittedInWindow(ctx context.Context, from, to time.Time) ([]invoice.Invoice, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id valueobject.ProductID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode valueobject.Barcode) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id valueobject.ProductID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of ledger.StockMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, productID valueobject.ProductID) ([]ledger.StockMovement, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter ledger.MovementFilter) ([]ledger.StockMovement, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]ledger.StockMovement), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *ledger.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) AppendBatch(ctx context.Context, movements []*ledger.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

var serviceNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type serviceFixture struct {
	invoiceRepo  *MockInvoiceRepository
	productRepo  *MockProductRepository
	movementRepo *MockMovementRepository
	svc          *InvoiceService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		invoiceRepo:  new(MockInvoiceRepository),
		productRepo:  new(MockProductRepository),
		movementRepo: new(MockMovementRepository),
	}
	scope := NewNoOpTransactionScope(f.invoiceRepo, f.productRepo, f.movementRepo)
	f.svc = NewInvoiceService(scope, nil, nil, DefaultInvoicePrefixes())
	f.svc.now = func() time.Time { return serviceNow }
	return f
}

func sellableProduct(t *testing.T, id, stock, priceMinor, costMinor int64) *catalog.Product {
	t.Helper()
	name, err := valueobject.NewProductName("Test Product")
	require.NoError(t, err)
	p := catalog.NewProduct(name, serviceNow).ClearDomainEvents()
	p.ID = id

	price := valueobject.NewMoney(priceMinor)
	cost := valueobject.NewMoney(costMinor)
	p, err = p.UpdatePricing(&price, &cost, serviceNow)
	require.NoError(t, err)
	p = p.ClearDomainEvents()

	if stock > 0 {
		sq, err := valueobject.NewStockQuantity(stock)
		require.NoError(t, err)
		p = p.UpdateStock(sq, serviceNow)
	}
	return &p
}

func persistedDraft(t *testing.T, id int64, invoiceType invoice.InvoiceType, lines ...invoice.InvoiceLine) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.NewInvoice("INV", 42, serviceNow, invoiceType, nil, serviceNow)
	require.NoError(t, err)
	inv = inv.ClearDomainEvents()
	inv.ID = id
	for _, line := range lines {
		inv, err = inv.AddLine(line, serviceNow)
		require.NoError(t, err)
	}
	return &inv
}

func draftLine(t *testing.T, invoiceID, productID, qty, priceMinor, costMinor int64) invoice.InvoiceLine {
	t.Helper()
	iid, err := valueobject.NewInvoiceID(invoiceID)
	require.NoError(t, err)
	pid, err := valueobject.NewProductID(productID)
	require.NoError(t, err)
	quantity, err := valueobject.NewSalesQuantity(qty)
	require.NoError(t, err)
	line, err := invoice.NewInvoiceLine(iid, pid, quantity,
		valueobject.NewMoney(priceMinor), valueobject.NewMoney(costMinor), valueobject.ZeroMoney())
	require.NoError(t, err)
	return line
}

// ============================================================================
// CreateDraft
// ============================================================================

func TestInvoiceService_CreateDraft(t *testing.T) {
	f := newFixture()

	product := sellableProduct(t, 1, 10, 1000, 600)
	f.invoiceRepo.On("NextNumber", mock.Anything, "INV").Return(int64(43), nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.Status == invoice.StatusDraft && inv.LineCount() == 1
	})).Return(nil)

	resp, err := f.svc.CreateDraft(context.Background(), CreateInvoiceRequest{
		Type:  "SALE",
		Lines: []LineRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000043", resp.Code)
	assert.Equal(t, "DRAFT", resp.Status)
	require.Len(t, resp.Lines, 1)
	// price and cost snapshotted from the catalog
	assert.Equal(t, int64(1000), resp.Lines[0].PriceAtSale)
	assert.Equal(t, int64(600), resp.Lines[0].CostAtSale)
	assert.Equal(t, int64(2000), resp.TotalAmount)
}

func TestInvoiceService_CreateDraft_InactiveProduct(t *testing.T) {
	f := newFixture()

	product := sellableProduct(t, 1, 10, 1000, 600)
	inactive, err := product.Deactivate(serviceNow)
	require.NoError(t, err)

	f.invoiceRepo.On("NextNumber", mock.Anything, "INV").Return(int64(43), nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(&inactive, nil)

	_, err = f.svc.CreateDraft(context.Background(), CreateInvoiceRequest{
		Type:  "SALE",
		Lines: []LineRequest{{ProductID: 1, Quantity: 2}},
	})
	assert.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ============================================================================
// Commit
// ============================================================================

func TestInvoiceService_Commit_Sale(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 3, 1000, 600))
	product := sellableProduct(t, 1, 10, 1000, 600)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(draft, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Stock.Value() == 7
	})).Return(nil)
	f.movementRepo.On("AppendBatch", mock.Anything, mock.MatchedBy(func(ms []*ledger.StockMovement) bool {
		return len(ms) == 1 && ms[0].Change.Value() == -3 && ms[0].Reason == ledger.ReasonSale &&
			ms[0].SourceInvoiceID != nil && ms[0].SourceInvoiceID.Value() == 7
	})).Return(nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.Status == invoice.StatusPending
	})).Return(nil)

	resp, err := f.svc.Commit(context.Background(), 7, CommitInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)

	f.invoiceRepo.AssertExpectations(t)
	f.productRepo.AssertExpectations(t)
	f.movementRepo.AssertExpectations(t)
}

func TestInvoiceService_Commit_WithPayment(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 1, 1000, 600))
	product := sellableProduct(t, 1, 10, 1000, 600)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(draft, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.movementRepo.On("AppendBatch", mock.Anything, mock.Anything).Return(nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	method := "CASH"
	resp, err := f.svc.Commit(context.Background(), 7, CommitInvoiceRequest{PaymentMethod: &method})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	require.NotNil(t, resp.PaymentMethod)
	assert.Equal(t, "CASH", *resp.PaymentMethod)
}

func TestInvoiceService_Commit_Oversell(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 5, 1000, 600))
	product := sellableProduct(t, 1, 3, 1000, 600)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(draft, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)

	_, err := f.svc.Commit(context.Background(), 7, CommitInvoiceRequest{})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	f.movementRepo.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceService_Commit_Purchase(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypePurchase, draftLine(t, 7, 1, 4, 600, 600))
	product := sellableProduct(t, 1, 0, 1000, 600)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(draft, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Stock.Value() == 4
	})).Return(nil)
	f.movementRepo.On("AppendBatch", mock.Anything, mock.MatchedBy(func(ms []*ledger.StockMovement) bool {
		return len(ms) == 1 && ms[0].Change.Value() == 4 && ms[0].Reason == ledger.ReasonPurchase
	})).Return(nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Commit(context.Background(), 7, CommitInvoiceRequest{})
	require.NoError(t, err)
	f.movementRepo.AssertExpectations(t)
}

// ============================================================================
// Cancel
// ============================================================================

func TestInvoiceService_Cancel_Draft(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 2, 1000, 600))

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(draft, nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.Status == invoice.StatusCancelled
	})).Return(nil)

	resp, err := f.svc.Cancel(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)

	// a draft never moved stock, so nothing to compensate
	f.movementRepo.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestInvoiceService_Cancel_CommittedSaleCompensates(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 3, 1000, 600))
	result, err := draft.Commit(nil, serviceNow)
	require.NoError(t, err)
	pending := result.Invoice.ClearDomainEvents()

	product := sellableProduct(t, 1, 7, 1000, 600)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(&pending, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ProductIDRef()).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.Stock.Value() == 10
	})).Return(nil)
	f.movementRepo.On("AppendBatch", mock.Anything, mock.MatchedBy(func(ms []*ledger.StockMovement) bool {
		return len(ms) == 1 && ms[0].Change.Value() == 3 && ms[0].Reason == ledger.ReasonReturn
	})).Return(nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.Status == invoice.StatusCancelled
	})).Return(nil)

	resp, err := f.svc.Cancel(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	f.movementRepo.AssertExpectations(t)
}

func TestInvoiceService_Cancel_Paid(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 1, 1000, 600))
	paid, err := draft.MarkAsPaid(invoice.PaymentCash, serviceNow)
	require.NoError(t, err)

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(&paid, nil)

	_, err = f.svc.Cancel(context.Background(), 7)
	var transitionErr *shared.InvalidTransition
	assert.ErrorAs(t, err, &transitionErr)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ============================================================================
// Payment transitions
// ============================================================================

func TestInvoiceService_Pay(t *testing.T) {
	f := newFixture()

	draft := persistedDraft(t, 7, invoice.TypeSale, draftLine(t, 7, 1, 1, 1000, 600))
	result, err := draft.Commit(nil, serviceNow)
	require.NoError(t, err)
	pending := result.Invoice.ClearDomainEvents()

	invoiceID, _ := valueobject.NewInvoiceID(7)
	f.invoiceRepo.On("FindByID", mock.Anything, invoiceID).Return(&pending, nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.Status == invoice.StatusPaid
	})).Return(nil)

	resp, err := f.svc.Pay(context.Background(), 7, PayInvoiceRequest{PaymentMethod: "CARD"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
}
