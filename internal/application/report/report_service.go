package report

import (
	"context"
	"time"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/report"
	"github.com/stockpos/backend/internal/domain/shared"
)

// ReportService recomputes reporting rollups from invoice history. Rollups
// are derived data: they are folded fresh from the committed invoices of the
// requested window, never incrementally patched, so a re-run always agrees
// with the ledger of record.
type ReportService struct {
	invoiceRepo invoice.InvoiceRepository
}

// NewReportService creates a new ReportService
func NewReportService(invoiceRepo invoice.InvoiceRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo}
}

// ProductSales returns the per-product daily sales rollup for [from, to)
func (s *ReportService) ProductSales(ctx context.Context, from, to time.Time) ([]ProductSalesResponse, error) {
	window, err := s.window(from, to)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindCommittedInWindow(ctx, window.From, window.To)
	if err != nil {
		return nil, err
	}

	rows, err := report.FoldProductSales(invoices, window)
	if err != nil {
		return nil, err
	}
	return ToProductSalesResponses(rows), nil
}

// CustomerSummaries returns the per-customer invoice rollup for [from, to)
func (s *ReportService) CustomerSummaries(ctx context.Context, from, to time.Time) ([]CustomerSummaryResponse, error) {
	window, err := s.window(from, to)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindCommittedInWindow(ctx, window.From, window.To)
	if err != nil {
		return nil, err
	}

	rows, err := report.FoldCustomerInvoices(invoices, window)
	if err != nil {
		return nil, err
	}
	return ToCustomerSummaryResponses(rows), nil
}

func (s *ReportService) window(from, to time.Time) (report.Window, error) {
	if !to.After(from) {
		return report.Window{}, shared.NewValidationError("window", "to must be after from")
	}
	return report.Window{From: from, To: to}, nil
}
