package invoice

import (
	"fmt"
	"time"

	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InvoiceType distinguishes the business direction of an invoice
type InvoiceType string

const (
	TypeSale     InvoiceType = "SALE"
	TypePurchase InvoiceType = "PURCHASE"
	TypeRefund   InvoiceType = "REFUND"
)

// IsValid checks if the type is part of the closed enumeration
func (t InvoiceType) IsValid() bool {
	switch t {
	case TypeSale, TypePurchase, TypeRefund:
		return true
	}
	return false
}

// String returns the string representation of InvoiceType
func (t InvoiceType) String() string {
	return string(t)
}

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "DRAFT"
	StatusPending       InvoiceStatus = "PENDING"
	StatusPaid          InvoiceStatus = "PAID"
	StatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	StatusOverdue       InvoiceStatus = "OVERDUE"
	StatusCancelled     InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusPartiallyPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states no transition can leave
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPending || target == StatusPaid || target == StatusCancelled
	case StatusPending:
		return target == StatusPaid || target == StatusPartiallyPaid || target == StatusOverdue || target == StatusCancelled
	case StatusPartiallyPaid:
		return target == StatusPaid || target == StatusOverdue || target == StatusCancelled
	case StatusOverdue:
		return target == StatusPaid || target == StatusPartiallyPaid || target == StatusCancelled
	case StatusPaid, StatusCancelled:
		return false
	}
	return false
}

// PaymentMethod is how an invoice was settled
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentVoucher  PaymentMethod = "VOUCHER"
)

// IsValid checks if the payment method is known
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentVoucher:
		return true
	}
	return false
}

// Invoice is the aggregate root for a sale, purchase or refund document.
// It owns its line items; the monetary totals are always derived from the
// full line set and are never independently settable, so they cannot drift.
// Every mutation returns a new snapshot.
type Invoice struct {
	shared.BaseEntity
	Prefix        string
	Number        int64
	InvoiceDate   time.Time
	Type          InvoiceType
	CustomerID    *valueobject.CustomerID
	Status        InvoiceStatus
	PaymentMethod *PaymentMethod

	lines         []InvoiceLine
	totalAmount   valueobject.Money
	totalProfit   valueobject.Money
	totalDiscount valueobject.Money

	events []shared.DomainEvent
}

// NewInvoice creates an empty draft invoice
func NewInvoice(prefix string, number int64, invoiceDate time.Time, invoiceType InvoiceType, customerID *valueobject.CustomerID, now time.Time) (Invoice, error) {
	if prefix == "" {
		return Invoice{}, shared.NewValidationError("prefix", "cannot be empty")
	}
	if len(prefix) > 10 {
		return Invoice{}, shared.NewValidationError("prefix", "cannot exceed 10 characters")
	}
	if number <= 0 {
		return Invoice{}, shared.NewValidationError("number", "must be positive")
	}
	if !invoiceType.IsValid() {
		return Invoice{}, shared.NewValidationError("type", "unknown invoice type")
	}

	inv := Invoice{
		BaseEntity:  shared.NewBaseEntity(now),
		Prefix:      prefix,
		Number:      number,
		InvoiceDate: invoiceDate,
		Type:        invoiceType,
		CustomerID:  customerID,
		Status:      StatusDraft,
	}
	return inv.withEvent(NewInvoiceCreatedEvent(&inv)), nil
}

// NewInvoiceWithLines is the single factory for building an invoice together
// with its lines; the returned aggregate has totals derived from the full
// line set. Lines built for another invoice are rejected.
func NewInvoiceWithLines(prefix string, number int64, invoiceDate time.Time, invoiceType InvoiceType, customerID *valueobject.CustomerID, lines []InvoiceLine, now time.Time) (Invoice, error) {
	inv, err := NewInvoice(prefix, number, invoiceDate, invoiceType, customerID, now)
	if err != nil {
		return Invoice{}, err
	}
	for _, line := range lines {
		inv, err = inv.AddLine(line, now)
		if err != nil {
			return Invoice{}, err
		}
	}
	return inv, nil
}

// Code returns the human-readable invoice code, e.g. "INV-000042"
func (i Invoice) Code() string {
	return fmt.Sprintf("%s-%06d", i.Prefix, i.Number)
}

// InvoiceIDRef returns the invoice's identifier as a typed reference.
// Zero for an unpersisted invoice.
func (i Invoice) InvoiceIDRef() valueobject.InvoiceID {
	if !i.IsPersisted() {
		return valueobject.InvoiceID{}
	}
	id, _ := valueobject.NewInvoiceID(i.ID)
	return id
}

// Lines returns a copy of the line items
func (i Invoice) Lines() []InvoiceLine {
	out := make([]InvoiceLine, len(i.lines))
	copy(out, i.lines)
	return out
}

// LineCount returns the number of line items
func (i Invoice) LineCount() int {
	return len(i.lines)
}

// LineByProduct returns the line for a product, if present
func (i Invoice) LineByProduct(productID valueobject.ProductID) (InvoiceLine, bool) {
	for _, line := range i.lines {
		if line.ProductID.Value() == productID.Value() {
			return line, true
		}
	}
	return InvoiceLine{}, false
}

// TotalAmount is the derived invoice total: sum of line amounts net of
// line discounts
func (i Invoice) TotalAmount() valueobject.Money {
	return i.totalAmount
}

// TotalProfit is the derived profit over snapshot cost prices
func (i Invoice) TotalProfit() valueobject.Money {
	return i.totalProfit
}

// TotalDiscount is the derived sum of line discounts
func (i Invoice) TotalDiscount() valueobject.Money {
	return i.totalDiscount
}

// checkLineIntegrity rejects lines built for a different invoice
func (i Invoice) checkLineIntegrity(line InvoiceLine) error {
	if line.InvoiceID.Value() != i.ID {
		return shared.NewIntegrityViolation(
			"line belongs to invoice %d, not invoice %d", line.InvoiceID.Value(), i.ID)
	}
	return nil
}

// AddLine adds a line item and recomputes the totals from the full line set.
// Only allowed on drafts; a line for a product already on the invoice is
// rejected so quantities stay in one place.
func (i Invoice) AddLine(line InvoiceLine, now time.Time) (Invoice, error) {
	if i.Status != StatusDraft {
		return Invoice{}, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft invoice")
	}
	if err := i.checkLineIntegrity(line); err != nil {
		return Invoice{}, err
	}
	if _, exists := i.LineByProduct(line.ProductID); exists {
		return Invoice{}, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already on invoice, update the line instead")
	}

	lines := make([]InvoiceLine, 0, len(i.lines)+1)
	lines = append(lines, i.lines...)
	lines = append(lines, line)
	return i.withLines(lines, now)
}

// RemoveLine removes the line for a product and recomputes the totals
func (i Invoice) RemoveLine(productID valueobject.ProductID, now time.Time) (Invoice, error) {
	if i.Status != StatusDraft {
		return Invoice{}, shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft invoice")
	}

	lines := make([]InvoiceLine, 0, len(i.lines))
	found := false
	for _, line := range i.lines {
		if line.ProductID.Value() == productID.Value() {
			found = true
			continue
		}
		lines = append(lines, line)
	}
	if !found {
		return Invoice{}, shared.ErrNotFound
	}
	return i.withLines(lines, now)
}

// UpdateLine applies fn to the line for a product and recomputes the totals.
// fn must not rehome the line: changing its invoice or product reference is
// an integrity violation.
func (i Invoice) UpdateLine(productID valueobject.ProductID, now time.Time, fn func(InvoiceLine) (InvoiceLine, error)) (Invoice, error) {
	if i.Status != StatusDraft {
		return Invoice{}, shared.NewDomainError("INVALID_STATE", "Cannot update lines on a non-draft invoice")
	}

	lines := make([]InvoiceLine, len(i.lines))
	copy(lines, i.lines)
	for idx, line := range lines {
		if line.ProductID.Value() != productID.Value() {
			continue
		}
		updated, err := fn(line)
		if err != nil {
			return Invoice{}, err
		}
		if err := i.checkLineIntegrity(updated); err != nil {
			return Invoice{}, err
		}
		if updated.ProductID.Value() != line.ProductID.Value() {
			return Invoice{}, shared.NewIntegrityViolation(
				"line update cannot move the line from product %d to product %d",
				line.ProductID.Value(), updated.ProductID.Value())
		}
		lines[idx] = updated
		return i.withLines(lines, now)
	}
	return Invoice{}, shared.ErrNotFound
}

// withLines replaces the line set and re-derives all totals from it
func (i Invoice) withLines(lines []InvoiceLine, now time.Time) (Invoice, error) {
	totalAmount := valueobject.ZeroMoney()
	totalProfit := valueobject.ZeroMoney()
	totalDiscount := valueobject.ZeroMoney()
	for _, line := range lines {
		amount, err := line.Amount()
		if err != nil {
			return Invoice{}, err
		}
		profit, err := line.Profit()
		if err != nil {
			return Invoice{}, err
		}
		if totalAmount, err = totalAmount.Add(amount); err != nil {
			return Invoice{}, err
		}
		if totalProfit, err = totalProfit.Add(profit); err != nil {
			return Invoice{}, err
		}
		if totalDiscount, err = totalDiscount.Add(line.Discount); err != nil {
			return Invoice{}, err
		}
	}

	i.lines = lines
	i.totalAmount = totalAmount
	i.totalProfit = totalProfit
	i.totalDiscount = totalDiscount
	i.BaseEntity = i.Touched(now)
	return i, nil
}

// transition moves the invoice to a target status or fails with
// InvalidTransition, leaving the receiver unchanged
func (i Invoice) transition(target InvoiceStatus, now time.Time) (Invoice, error) {
	if !i.Status.CanTransitionTo(target) {
		return Invoice{}, shared.NewInvalidTransition(i.Status.String(), target.String())
	}
	i.Status = target
	i.BaseEntity = i.Touched(now)
	return i, nil
}

// MarkAsPaid settles the invoice with the given payment method
func (i Invoice) MarkAsPaid(method PaymentMethod, now time.Time) (Invoice, error) {
	if !method.IsValid() {
		return Invoice{}, shared.NewValidationError("payment_method", "unknown payment method")
	}
	next, err := i.transition(StatusPaid, now)
	if err != nil {
		return Invoice{}, err
	}
	next.PaymentMethod = &method
	return next.withEvent(NewInvoicePaidEvent(&next)), nil
}

// MarkAsPartiallyPaid records a partial settlement
func (i Invoice) MarkAsPartiallyPaid(now time.Time) (Invoice, error) {
	return i.transition(StatusPartiallyPaid, now)
}

// MarkAsOverdue flags an unpaid invoice past its due date
func (i Invoice) MarkAsOverdue(now time.Time) (Invoice, error) {
	return i.transition(StatusOverdue, now)
}

// Cancel voids the invoice. Paid invoices cannot be cancelled.
func (i Invoice) Cancel(now time.Time) (Invoice, error) {
	next, err := i.transition(StatusCancelled, now)
	if err != nil {
		return Invoice{}, err
	}
	return next.withEvent(NewInvoiceCancelledEvent(&next)), nil
}

// CommitResult is the single combined outcome of committing an invoice: the
// new invoice snapshot and the stock movements the persistence boundary must
// store atomically with it.
type CommitResult struct {
	Invoice   Invoice
	Movements []*ledger.StockMovement
}

// Commit transitions a draft invoice out of DRAFT and derives exactly one
// stock movement per line item: SALE invoices emit negative SALE deltas,
// PURCHASE invoices positive PURCHASE deltas, REFUND invoices positive
// RETURN deltas, each carrying the invoice as its source. Passing a payment
// method lands the invoice directly on PAID, otherwise on PENDING. The
// movements and the status transition are produced together or not at all.
func (i Invoice) Commit(method *PaymentMethod, now time.Time) (CommitResult, error) {
	if i.Status != StatusDraft {
		return CommitResult{}, shared.NewInvalidTransition(i.Status.String(), StatusPending.String())
	}
	if len(i.lines) == 0 {
		return CommitResult{}, shared.NewDomainError("NO_LINES", "Cannot commit an invoice without line items")
	}
	if !i.IsPersisted() {
		return CommitResult{}, shared.NewValidationError("invoice_id", "invoice must be persisted before commit so movements can reference it")
	}

	var reason ledger.MovementReason
	outbound := false
	switch i.Type {
	case TypeSale:
		reason, outbound = ledger.ReasonSale, true
	case TypePurchase:
		reason = ledger.ReasonPurchase
	case TypeRefund:
		reason = ledger.ReasonReturn
	default:
		return CommitResult{}, shared.NewValidationError("type", "unknown invoice type")
	}

	invoiceID := i.InvoiceIDRef()
	movements := make([]*ledger.StockMovement, 0, len(i.lines))
	for _, line := range i.lines {
		delta := line.Quantity.Value()
		if outbound {
			delta = -delta
		}
		movement, err := ledger.NewStockMovement(line.ProductID, delta, reason, now)
		if err != nil {
			return CommitResult{}, err
		}
		movements = append(movements, movement.WithSourceInvoice(invoiceID))
	}

	target := StatusPending
	if method != nil {
		if !method.IsValid() {
			return CommitResult{}, shared.NewValidationError("payment_method", "unknown payment method")
		}
		target = StatusPaid
	}
	next, err := i.transition(target, now)
	if err != nil {
		return CommitResult{}, err
	}
	next.PaymentMethod = method
	next = next.withEvent(NewInvoiceCommittedEvent(&next, len(movements)))

	return CommitResult{Invoice: next, Movements: movements}, nil
}

// DomainEvents returns the events recorded since the snapshot was loaded
func (i Invoice) DomainEvents() []shared.DomainEvent {
	return i.events
}

// ClearDomainEvents returns a copy with the pending events drained
func (i Invoice) ClearDomainEvents() Invoice {
	i.events = nil
	return i
}

func (i Invoice) withEvent(event shared.DomainEvent) Invoice {
	events := make([]shared.DomainEvent, 0, len(i.events)+1)
	events = append(events, i.events...)
	events = append(events, event)
	i.events = events
	return i
}

// RestoreInvoice rebuilds an invoice snapshot from persisted state. It is
// intended for the persistence boundary only; totals are re-derived from the
// lines, never trusted from storage.
func RestoreInvoice(
	base shared.BaseEntity,
	prefix string,
	number int64,
	invoiceDate time.Time,
	invoiceType InvoiceType,
	customerID *valueobject.CustomerID,
	status InvoiceStatus,
	method *PaymentMethod,
	lines []InvoiceLine,
) (Invoice, error) {
	if !invoiceType.IsValid() {
		return Invoice{}, shared.NewValidationError("type", "unknown invoice type")
	}
	if !status.IsValid() {
		return Invoice{}, shared.NewValidationError("status", "unknown invoice status")
	}

	inv := Invoice{
		BaseEntity:    base,
		Prefix:        prefix,
		Number:        number,
		InvoiceDate:   invoiceDate,
		Type:          invoiceType,
		CustomerID:    customerID,
		Status:        status,
		PaymentMethod: method,
	}
	for _, line := range lines {
		if err := inv.checkLineIntegrity(line); err != nil {
			return Invoice{}, err
		}
	}
	restored, err := inv.withLines(lines, base.UpdatedAt)
	if err != nil {
		return Invoice{}, err
	}
	// withLines clears the synced flag; storage state is authoritative here.
	restored.Synced = base.Synced
	restored.UpdatedAt = base.UpdatedAt
	return restored, nil
}
