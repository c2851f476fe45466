package report

import (
	"sort"
	"time"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// SalesPerformance classifies one product-day of sales
type SalesPerformance string

const (
	PerformanceNoSales              SalesPerformance = "NO_SALES"
	PerformanceLossMaking           SalesPerformance = "LOSS_MAKING"
	PerformanceLowVolume            SalesPerformance = "LOW_VOLUME"
	PerformanceBreakEven            SalesPerformance = "BREAK_EVEN"
	PerformanceProfitable           SalesPerformance = "PROFITABLE"
	PerformanceHighVolumeProfitable SalesPerformance = "HIGH_VOLUME_PROFITABLE"
)

// Volume thresholds in units sold per day.
const (
	highVolumeUnits   = 50
	lowVolumeMaxUnits = 5
)

// Window is a half-open time interval [From, To)
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// DateBucket normalizes a timestamp to its UTC calendar day
func DateBucket(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ProductSalesSummary is the per-product, per-day sales rollup. Revenue and
// cost come from the snapshot prices stored on the invoice lines, never from
// the product's live pricing, so a later catalog price change cannot rewrite
// a historical summary. One row per (product, date); a sale is never counted
// twice.
type ProductSalesSummary struct {
	ProductID    valueobject.ProductID
	Date         time.Time
	TotalSold    int64
	TotalRevenue valueobject.Money
	TotalCost    valueobject.Money
}

// NewProductSalesSummary creates an empty summary row for a product-day
func NewProductSalesSummary(productID valueobject.ProductID, date time.Time) ProductSalesSummary {
	return ProductSalesSummary{
		ProductID:    productID,
		Date:         DateBucket(date),
		TotalRevenue: valueobject.ZeroMoney(),
		TotalCost:    valueobject.ZeroMoney(),
	}
}

// AddSale folds one sold line into the summary. This is the incremental
// fast path; applying it for every line in a window yields exactly the same
// row as the full fold.
func (s ProductSalesSummary) AddSale(quantity int64, revenue, cost valueobject.Money) (ProductSalesSummary, error) {
	var err error
	if s.TotalRevenue, err = s.TotalRevenue.Add(revenue); err != nil {
		return ProductSalesSummary{}, err
	}
	if s.TotalCost, err = s.TotalCost.Add(cost); err != nil {
		return ProductSalesSummary{}, err
	}
	s.TotalSold += quantity
	return s, nil
}

// Profit returns revenue minus cost
func (s ProductSalesSummary) Profit() valueobject.Money {
	profit, err := s.TotalRevenue.Subtract(s.TotalCost)
	if err != nil {
		return valueobject.ZeroMoney()
	}
	return profit
}

// ProfitMargin returns profit as a display percentage of revenue.
// The second return is false when there was no revenue.
func (s ProductSalesSummary) ProfitMargin() (valueobject.Percent, bool) {
	return s.Profit().PercentOf(s.TotalRevenue)
}

// SalesPerformance classifies the day for reporting
func (s ProductSalesSummary) SalesPerformance() SalesPerformance {
	if s.TotalSold == 0 {
		return PerformanceNoSales
	}
	profit := s.Profit()
	if profit.IsNegative() {
		return PerformanceLossMaking
	}
	if s.TotalSold <= lowVolumeMaxUnits {
		return PerformanceLowVolume
	}
	if profit.IsZero() {
		return PerformanceBreakEven
	}
	if s.TotalSold >= highVolumeUnits {
		return PerformanceHighVolumeProfitable
	}
	return PerformanceProfitable
}

type summaryKey struct {
	productID int64
	date      time.Time
}

// FoldProductSales recomputes the per-product daily summaries from invoice
// history. Only committed sale invoices (out of DRAFT, not CANCELLED) whose
// invoice date falls inside the window contribute. The fold is pure and
// deterministic: rows come back ordered by date then product.
func FoldProductSales(invoices []invoice.Invoice, window Window) ([]ProductSalesSummary, error) {
	rows := make(map[summaryKey]ProductSalesSummary)

	for _, inv := range invoices {
		if inv.Type != invoice.TypeSale {
			continue
		}
		if inv.Status == invoice.StatusDraft || inv.Status == invoice.StatusCancelled {
			continue
		}
		if !window.Contains(inv.InvoiceDate) {
			continue
		}

		date := DateBucket(inv.InvoiceDate)
		for _, line := range inv.Lines() {
			key := summaryKey{productID: line.ProductID.Value(), date: date}
			row, ok := rows[key]
			if !ok {
				row = NewProductSalesSummary(line.ProductID, date)
			}

			revenue, err := line.PriceAtSale.Scale(line.Quantity.Value())
			if err != nil {
				return nil, err
			}
			cost, err := line.CostAtSale.Scale(line.Quantity.Value())
			if err != nil {
				return nil, err
			}
			row, err = row.AddSale(line.Quantity.Value(), revenue, cost)
			if err != nil {
				return nil, err
			}
			rows[key] = row
		}
	}

	out := make([]ProductSalesSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ProductID.Value() < out[j].ProductID.Value()
	})
	return out, nil
}
