package report

import (
	"sort"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// CustomerInvoiceSummary is the per-customer invoice rollup. The outstanding
// debt is recomputed from totalAmount and totalPaid on every update rather
// than tracked as an independent field, so the three quantities cannot drift
// apart.
type CustomerInvoiceSummary struct {
	CustomerID    valueobject.CustomerID
	TotalInvoices int64
	TotalAmount   valueobject.Money
	TotalPaid     valueobject.Money

	totalDebt valueobject.Money
}

// NewCustomerInvoiceSummary creates an empty summary for a customer
func NewCustomerInvoiceSummary(customerID valueobject.CustomerID) (CustomerInvoiceSummary, error) {
	if customerID.IsZero() {
		return CustomerInvoiceSummary{}, shared.NewValidationError("customer_id", "summary requires a persisted customer")
	}
	return CustomerInvoiceSummary{
		CustomerID:  customerID,
		TotalAmount: valueobject.ZeroMoney(),
		TotalPaid:   valueobject.ZeroMoney(),
		totalDebt:   valueobject.ZeroMoney(),
	}, nil
}

// TotalDebt is the derived outstanding balance: max(0, amount - paid)
func (s CustomerInvoiceSummary) TotalDebt() valueobject.Money {
	return s.totalDebt
}

// recomputeDebt re-derives the outstanding balance, clamped at zero so an
// overpayment never shows as negative debt
func (s CustomerInvoiceSummary) recomputeDebt() (CustomerInvoiceSummary, error) {
	debt, err := s.TotalAmount.Subtract(s.TotalPaid)
	if err != nil {
		return CustomerInvoiceSummary{}, err
	}
	if debt.IsNegative() {
		debt = valueobject.ZeroMoney()
	}
	s.totalDebt = debt
	return s, nil
}

// AddInvoice folds one committed invoice total into the summary
func (s CustomerInvoiceSummary) AddInvoice(amount valueobject.Money) (CustomerInvoiceSummary, error) {
	if amount.IsNegative() {
		return CustomerInvoiceSummary{}, shared.NewValidationError("amount", "cannot be negative")
	}
	total, err := s.TotalAmount.Add(amount)
	if err != nil {
		return CustomerInvoiceSummary{}, err
	}
	s.TotalAmount = total
	s.TotalInvoices++
	return s.recomputeDebt()
}

// RecordPayment folds one payment into the summary
func (s CustomerInvoiceSummary) RecordPayment(amount valueobject.Money) (CustomerInvoiceSummary, error) {
	if amount.IsNegative() {
		return CustomerInvoiceSummary{}, shared.NewValidationError("amount", "cannot be negative")
	}
	paid, err := s.TotalPaid.Add(amount)
	if err != nil {
		return CustomerInvoiceSummary{}, err
	}
	s.TotalPaid = paid
	return s.recomputeDebt()
}

// FoldCustomerInvoices recomputes customer summaries from invoice history.
// Committed invoices (out of DRAFT, not CANCELLED) with a customer and an
// invoice date inside the window contribute; PAID invoices count as settled
// in full. Rows come back ordered by customer.
func FoldCustomerInvoices(invoices []invoice.Invoice, window Window) ([]CustomerInvoiceSummary, error) {
	rows := make(map[int64]CustomerInvoiceSummary)

	for _, inv := range invoices {
		if inv.CustomerID == nil {
			continue
		}
		if inv.Status == invoice.StatusDraft || inv.Status == invoice.StatusCancelled {
			continue
		}
		if !window.Contains(inv.InvoiceDate) {
			continue
		}

		key := inv.CustomerID.Value()
		row, ok := rows[key]
		if !ok {
			var err error
			row, err = NewCustomerInvoiceSummary(*inv.CustomerID)
			if err != nil {
				return nil, err
			}
		}

		row, err := row.AddInvoice(inv.TotalAmount())
		if err != nil {
			return nil, err
		}
		if inv.Status == invoice.StatusPaid {
			row, err = row.RecordPayment(inv.TotalAmount())
			if err != nil {
				return nil, err
			}
		}
		rows[key] = row
	}

	out := make([]CustomerInvoiceSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CustomerID.Value() < out[j].CustomerID.Value()
	})
	return out, nil
}
