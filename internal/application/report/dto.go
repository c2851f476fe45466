package report

import (
	"time"

	"github.com/stockpos/backend/internal/domain/report"
)

// ReportWindowFilter bounds a report to a half-open date window [from, to)
type ReportWindowFilter struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// ProductSalesResponse represents one product-day sales rollup row.
// All monetary amounts are integer minor units.
type ProductSalesResponse struct {
	ProductID    int64     `json:"product_id"`
	Date         time.Time `json:"date"`
	TotalSold    int64     `json:"total_sold"`
	TotalRevenue int64     `json:"total_revenue"`
	TotalCost    int64     `json:"total_cost"`
	Profit       int64     `json:"profit"`
	ProfitMargin *string   `json:"profit_margin,omitempty"`
	Performance  string    `json:"performance"`
}

// CustomerSummaryResponse represents one customer rollup row
type CustomerSummaryResponse struct {
	CustomerID    int64 `json:"customer_id"`
	TotalInvoices int64 `json:"total_invoices"`
	TotalAmount   int64 `json:"total_amount"`
	TotalPaid     int64 `json:"total_paid"`
	TotalDebt     int64 `json:"total_debt"`
}

// ToProductSalesResponses converts domain summary rows
func ToProductSalesResponses(rows []report.ProductSalesSummary) []ProductSalesResponse {
	out := make([]ProductSalesResponse, len(rows))
	for i, row := range rows {
		resp := ProductSalesResponse{
			ProductID:    row.ProductID.Value(),
			Date:         row.Date,
			TotalSold:    row.TotalSold,
			TotalRevenue: row.TotalRevenue.MinorUnits(),
			TotalCost:    row.TotalCost.MinorUnits(),
			Profit:       row.Profit().MinorUnits(),
			Performance:  string(row.SalesPerformance()),
		}
		if margin, ok := row.ProfitMargin(); ok {
			v := margin.String()
			resp.ProfitMargin = &v
		}
		out[i] = resp
	}
	return out
}

// ToCustomerSummaryResponses converts domain summary rows
func ToCustomerSummaryResponses(rows []report.CustomerInvoiceSummary) []CustomerSummaryResponse {
	out := make([]CustomerSummaryResponse, len(rows))
	for i, row := range rows {
		out[i] = CustomerSummaryResponse{
			CustomerID:    row.CustomerID.Value(),
			TotalInvoices: row.TotalInvoices,
			TotalAmount:   row.TotalAmount.MinorUnits(),
			TotalPaid:     row.TotalPaid.MinorUnits(),
			TotalDebt:     row.TotalDebt().MinorUnits(),
		}
	}
	return out
}
