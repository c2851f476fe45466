package trade

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/catalog"
	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/partner"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InvoicePrefixes maps each invoice type to its numbering prefix
type InvoicePrefixes struct {
	Sale     string
	Purchase string
	Refund   string
}

// DefaultInvoicePrefixes returns the standard prefix set
func DefaultInvoicePrefixes() InvoicePrefixes {
	return InvoicePrefixes{Sale: "INV", Purchase: "PUR", Refund: "REF"}
}

// For resolves the prefix for an invoice type
func (p InvoicePrefixes) For(t invoice.InvoiceType) string {
	switch t {
	case invoice.TypePurchase:
		return p.Purchase
	case invoice.TypeRefund:
		return p.Refund
	default:
		return p.Sale
	}
}

// InvoiceService drives the invoice lifecycle: draft editing, the atomic
// commit that derives stock movements, and the payment state machine.
type InvoiceService struct {
	scope        TransactionScope
	customerRepo partner.CustomerRepository
	publisher    shared.EventPublisher
	prefixes     InvoicePrefixes
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	scope TransactionScope,
	customerRepo partner.CustomerRepository,
	publisher shared.EventPublisher,
	prefixes InvoicePrefixes,
) *InvoiceService {
	return &InvoiceService{
		scope:        scope,
		customerRepo: customerRepo,
		publisher:    publisher,
		prefixes:     prefixes,
		now:          time.Now,
	}
}

// CreateDraft opens a new draft invoice, reserving the next number for its
// prefix. Lines may be supplied up front; prices and costs are snapshotted
// from the catalog at this moment.
func (s *InvoiceService) CreateDraft(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	invoiceType := invoice.InvoiceType(req.Type)
	if !invoiceType.IsValid() {
		return nil, shared.NewValidationError("type", "unknown invoice type")
	}

	var customerID *valueobject.CustomerID
	if req.CustomerID != nil {
		id, err := valueobject.NewCustomerID(*req.CustomerID)
		if err != nil {
			return nil, err
		}
		if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}
		customerID = &id
	}

	now := s.now()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	var resp InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		prefix := s.prefixes.For(invoiceType)
		number, err := repos.InvoiceRepo().NextNumber(ctx, prefix)
		if err != nil {
			return err
		}

		inv, err := invoice.NewInvoice(prefix, number, invoiceDate, invoiceType, customerID, now)
		if err != nil {
			return err
		}

		for _, lineReq := range req.Lines {
			line, err := s.buildLine(ctx, repos.ProductRepo(), &inv, lineReq)
			if err != nil {
				return err
			}
			inv, err = inv.AddLine(line, now)
			if err != nil {
				return err
			}
		}

		if err := repos.InvoiceRepo().Save(ctx, &inv); err != nil {
			return err
		}
		s.publish(ctx, &inv)
		resp = ToInvoiceResponse(&inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByID retrieves an invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, id int64) (*InvoiceResponse, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// List retrieves invoices matching the filter, newest first
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := invoice.InvoiceFilter{
		From:     filter.From,
		To:       filter.To,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Type != "" {
		t := invoice.InvoiceType(filter.Type)
		domainFilter.Type = &t
	}
	if filter.Status != "" {
		st := invoice.InvoiceStatus(filter.Status)
		if !st.IsValid() {
			return nil, 0, shared.NewValidationError("status", "unknown invoice status")
		}
		domainFilter.Status = &st
	}
	if filter.CustomerID != nil {
		id, err := valueobject.NewCustomerID(*filter.CustomerID)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.CustomerID = &id
	}

	var invoices []invoice.Invoice
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoices, total, err = repos.InvoiceRepo().FindAll(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceResponses(invoices), total, nil
}

// AddLine adds a product position to a draft invoice
func (s *InvoiceService) AddLine(ctx context.Context, id int64, req LineRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(repos TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		line, err := s.buildLine(ctx, repos.ProductRepo(), &inv, req)
		if err != nil {
			return invoice.Invoice{}, err
		}
		return inv.AddLine(line, s.now())
	})
}

// UpdateLine changes the quantity or discount of an existing line
func (s *InvoiceService) UpdateLine(ctx context.Context, id, productID int64, req UpdateLineRequest) (*InvoiceResponse, error) {
	pid, err := valueobject.NewProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(_ TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		return inv.UpdateLine(pid, s.now(), func(line invoice.InvoiceLine) (invoice.InvoiceLine, error) {
			if req.Quantity != nil {
				quantity, err := valueobject.NewSalesQuantity(*req.Quantity)
				if err != nil {
					return invoice.InvoiceLine{}, err
				}
				line, err = line.WithQuantity(quantity)
				if err != nil {
					return invoice.InvoiceLine{}, err
				}
			}
			if req.Discount != nil {
				var err error
				line, err = line.WithDiscount(valueobject.NewMoney(*req.Discount))
				if err != nil {
					return invoice.InvoiceLine{}, err
				}
			}
			return line, nil
		})
	})
}

// RemoveLine removes a product position from a draft invoice
func (s *InvoiceService) RemoveLine(ctx context.Context, id, productID int64) (*InvoiceResponse, error) {
	pid, err := valueobject.NewProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(_ TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		return inv.RemoveLine(pid, s.now())
	})
}

// Commit finalizes a draft invoice: the derived stock movements, the adjusted
// product stocks and the status change are persisted in one transaction. A
// sale that would oversell any product fails whole, leaving the draft intact.
func (s *InvoiceService) Commit(ctx context.Context, id int64, req CommitInvoiceRequest) (*InvoiceResponse, error) {
	var method *invoice.PaymentMethod
	if req.PaymentMethod != nil {
		m := invoice.PaymentMethod(*req.PaymentMethod)
		if !m.IsValid() {
			return nil, shared.NewValidationError("payment_method", "unknown payment method")
		}
		method = &m
	}

	now := s.now()
	var resp InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := s.loadIn(ctx, repos, id)
		if err != nil {
			return err
		}

		result, err := inv.Commit(method, now)
		if err != nil {
			return err
		}

		for _, movement := range result.Movements {
			product, err := repos.ProductRepo().FindByID(ctx, movement.ProductID)
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
		}

		if err := repos.MovementRepo().AppendBatch(ctx, result.Movements); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, &result.Invoice); err != nil {
			return err
		}

		s.publish(ctx, &result.Invoice)
		resp = ToInvoiceResponse(&result.Invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pay settles an invoice
func (s *InvoiceService) Pay(ctx context.Context, id int64, req PayInvoiceRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		return inv.MarkAsPaid(invoice.PaymentMethod(req.PaymentMethod), s.now())
	})
}

// MarkPartiallyPaid records a partial settlement
func (s *InvoiceService) MarkPartiallyPaid(ctx context.Context, id int64) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		return inv.MarkAsPartiallyPaid(s.now())
	})
}

// MarkOverdue flags an unpaid invoice past its due date
func (s *InvoiceService) MarkOverdue(ctx context.Context, id int64) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, func(_ TransactionalRepositories, inv invoice.Invoice) (invoice.Invoice, error) {
		return inv.MarkAsOverdue(s.now())
	})
}

// Cancel voids an invoice. Cancelling an invoice that already moved stock
// appends compensating movements rather than editing the ledger, so the
// history of what happened stays intact.
func (s *InvoiceService) Cancel(ctx context.Context, id int64) (*InvoiceResponse, error) {
	now := s.now()
	var resp InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := s.loadIn(ctx, repos, id)
		if err != nil {
			return err
		}
		wasCommitted := inv.Status != invoice.StatusDraft

		cancelled, err := inv.Cancel(now)
		if err != nil {
			return err
		}

		if wasCommitted {
			if err := s.compensate(ctx, repos, &cancelled, now); err != nil {
				return err
			}
		}

		if err := repos.InvoiceRepo().Save(ctx, &cancelled); err != nil {
			return err
		}
		s.publish(ctx, &cancelled)
		resp = ToInvoiceResponse(&cancelled)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// compensate reverses the stock effect of a committed invoice by appending
// opposite movements for every line
func (s *InvoiceService) compensate(ctx context.Context, repos TransactionalRepositories, inv *invoice.Invoice, now time.Time) error {
	var reason ledger.MovementReason
	inbound := false
	switch inv.Type {
	case invoice.TypeSale:
		// stock left on the sale, comes back on cancellation
		reason, inbound = ledger.ReasonReturn, true
	case invoice.TypePurchase:
		reason = ledger.ReasonPurchaseReturn
	case invoice.TypeRefund:
		reason = ledger.ReasonManualAdjust
	default:
		return shared.NewValidationError("type", "unknown invoice type")
	}

	invoiceID := inv.InvoiceIDRef()
	movements := make([]*ledger.StockMovement, 0, inv.LineCount())
	for _, line := range inv.Lines() {
		delta := line.Quantity.Value()
		if !inbound {
			delta = -delta
		}
		movement, err := ledger.NewStockMovement(line.ProductID, delta, reason, now)
		if err != nil {
			return err
		}
		movements = append(movements, movement.WithSourceInvoice(invoiceID))
	}

	for _, movement := range movements {
		product, err := repos.ProductRepo().FindByID(ctx, movement.ProductID)
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
	}
	return repos.MovementRepo().AppendBatch(ctx, movements)
}

// mutate loads an invoice, applies fn and saves the result in one transaction
func (s *InvoiceService) mutate(ctx context.Context, id int64, fn func(TransactionalRepositories, invoice.Invoice) (invoice.Invoice, error)) (*InvoiceResponse, error) {
	var resp InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := s.loadIn(ctx, repos, id)
		if err != nil {
			return err
		}
		updated, err := fn(repos, *inv)
		if err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, &updated); err != nil {
			return err
		}
		s.publish(ctx, &updated)
		resp = ToInvoiceResponse(&updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *InvoiceService) load(ctx context.Context, id int64) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = s.loadIn(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) loadIn(ctx context.Context, repos TransactionalRepositories, id int64) (*invoice.Invoice, error) {
	invoiceID, err := valueobject.NewInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return repos.InvoiceRepo().FindByID(ctx, invoiceID)
}

// buildLine snapshots the product's current price and cost into a new line.
// An explicit price in the request overrides the catalog price; cost always
// comes from the catalog.
func (s *InvoiceService) buildLine(ctx context.Context, products catalog.ProductRepository, inv *invoice.Invoice, req LineRequest) (invoice.InvoiceLine, error) {
	productID, err := valueobject.NewProductID(req.ProductID)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}
	product, err := products.FindByID(ctx, productID)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}
	if inv.Type == invoice.TypeSale && !product.Active {
		return invoice.InvoiceLine{}, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot sell an inactive product")
	}

	quantity, err := valueobject.NewSalesQuantity(req.Quantity)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}

	price := valueobject.ZeroMoney()
	if req.Price != nil {
		price = valueobject.NewMoney(*req.Price)
	} else if product.Price != nil {
		price = *product.Price
	} else if inv.Type == invoice.TypeSale {
		return invoice.InvoiceLine{}, shared.NewDomainError("UNPRICED_PRODUCT", "Product has no price and none was given")
	}

	cost := valueobject.ZeroMoney()
	if product.CostPrice != nil {
		cost = *product.CostPrice
	}

	return invoice.NewInvoiceLine(inv.InvoiceIDRef(), productID, quantity, price, cost, valueobject.NewMoney(req.Discount))
}

func (s *InvoiceService) publish(ctx context.Context, inv *invoice.Invoice) {
	if s.publisher == nil {
		return
	}
	events := inv.DomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
}
