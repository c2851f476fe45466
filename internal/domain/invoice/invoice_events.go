package invoice

import (
	"github.com/stockpos/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated   = "InvoiceCreated"
	EventTypeInvoiceCommitted = "InvoiceCommitted"
	EventTypeInvoicePaid      = "InvoicePaid"
	EventTypeInvoiceCancelled = "InvoiceCancelled"
)

// InvoiceCreatedEvent is raised when a new draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Type string `json:"invoice_type"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		Code:            inv.Code(),
		Type:            inv.Type.String(),
	}
}

// InvoiceCommittedEvent is raised when a draft leaves DRAFT and its stock
// movements are derived
type InvoiceCommittedEvent struct {
	shared.BaseDomainEvent
	Code          string `json:"code"`
	Status        string `json:"status"`
	MovementCount int    `json:"movement_count"`
	TotalAmount   int64  `json:"total_amount"`
}

// NewInvoiceCommittedEvent creates a new InvoiceCommittedEvent
func NewInvoiceCommittedEvent(inv *Invoice, movementCount int) *InvoiceCommittedEvent {
	return &InvoiceCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCommitted, AggregateTypeInvoice, inv.ID),
		Code:            inv.Code(),
		Status:          inv.Status.String(),
		MovementCount:   movementCount,
		TotalAmount:     inv.TotalAmount().MinorUnits(),
	}
}

// InvoicePaidEvent is raised when an invoice is settled in full
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Code          string `json:"code"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int64  `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	method := ""
	if inv.PaymentMethod != nil {
		method = string(*inv.PaymentMethod)
	}
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID),
		Code:            inv.Code(),
		PaymentMethod:   method,
		TotalAmount:     inv.TotalAmount().MinorUnits(),
	}
}

// InvoiceCancelledEvent is raised when an invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, AggregateTypeInvoice, inv.ID),
		Code:            inv.Code(),
	}
}
