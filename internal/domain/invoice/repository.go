package invoice

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	Type       *InvoiceType
	Status     *InvoiceStatus
	CustomerID *valueobject.CustomerID
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// InvoiceRepository defines the interface for invoice persistence.
// Implementations load the aggregate whole (header plus lines) and return
// fully-validated snapshots.
type InvoiceRepository interface {
	// FindByID loads an invoice with its lines
	FindByID(ctx context.Context, id valueobject.InvoiceID) (*Invoice, error)

	// FindAll returns invoices matching the filter, newest first
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)

	// FindCommittedInWindow returns all non-draft, non-cancelled invoices
	// whose invoice date falls inside [from, to)
	FindCommittedInWindow(ctx context.Context, from, to time.Time) ([]Invoice, error)

	// NextNumber reserves the next sequential invoice number for a prefix
	NextNumber(ctx context.Context, prefix string) (int64, error)

	// Save creates or updates an invoice and its lines as one unit
	Save(ctx context.Context, inv *Invoice) error
}
