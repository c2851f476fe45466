package trade

import (
	"time"

	"github.com/stockpos/backend/internal/domain/invoice"
)

// CreateInvoiceRequest represents a request to open a new draft invoice
type CreateInvoiceRequest struct {
	Type        string     `json:"type" binding:"required,oneof=SALE PURCHASE REFUND"`
	CustomerID  *int64     `json:"customer_id" binding:"omitempty,min=1"`
	InvoiceDate *time.Time `json:"invoice_date"`
	Lines       []LineRequest `json:"lines" binding:"omitempty,dive"`
}

// LineRequest represents one product position on an invoice
type LineRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Price     *int64 `json:"price" binding:"omitempty,min=0"`
	Discount  int64  `json:"discount" binding:"omitempty,min=0"`
}

// UpdateLineRequest represents a change to an existing line
type UpdateLineRequest struct {
	Quantity *int64 `json:"quantity" binding:"omitempty,min=1"`
	Discount *int64 `json:"discount" binding:"omitempty,min=0"`
}

// CommitInvoiceRequest finalizes a draft invoice
type CommitInvoiceRequest struct {
	PaymentMethod *string `json:"payment_method" binding:"omitempty,oneof=CASH CARD TRANSFER VOUCHER"`
}

// PayInvoiceRequest settles an invoice
type PayInvoiceRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CASH CARD TRANSFER VOUCHER"`
}

// InvoiceListFilter represents filter options for invoice list
type InvoiceListFilter struct {
	Type       string     `form:"type" binding:"omitempty,oneof=SALE PURCHASE REFUND"`
	Status     string     `form:"status"`
	CustomerID *int64     `form:"customer_id" binding:"omitempty,min=1"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LineResponse represents an invoice line in API responses
type LineResponse struct {
	ProductID   int64 `json:"product_id"`
	Quantity    int64 `json:"quantity"`
	PriceAtSale int64 `json:"price_at_sale"`
	CostAtSale  int64 `json:"cost_at_sale"`
	Discount    int64 `json:"discount"`
	Amount      int64 `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses.
// All monetary amounts are integer minor units.
type InvoiceResponse struct {
	ID            int64          `json:"id"`
	Code          string         `json:"code"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	CustomerID    *int64         `json:"customer_id,omitempty"`
	PaymentMethod *string        `json:"payment_method,omitempty"`
	InvoiceDate   time.Time      `json:"invoice_date"`
	Lines         []LineResponse `json:"lines"`
	TotalAmount   int64          `json:"total_amount"`
	TotalProfit   int64          `json:"total_profit"`
	TotalDiscount int64          `json:"total_discount"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	lines := inv.Lines()
	lineResponses := make([]LineResponse, len(lines))
	for i, line := range lines {
		amount := int64(0)
		if a, err := line.Amount(); err == nil {
			amount = a.MinorUnits()
		}
		lineResponses[i] = LineResponse{
			ProductID:   line.ProductID.Value(),
			Quantity:    line.Quantity.Value(),
			PriceAtSale: line.PriceAtSale.MinorUnits(),
			CostAtSale:  line.CostAtSale.MinorUnits(),
			Discount:    line.Discount.MinorUnits(),
			Amount:      amount,
		}
	}

	resp := InvoiceResponse{
		ID:            inv.ID,
		Code:          inv.Code(),
		Type:          inv.Type.String(),
		Status:        inv.Status.String(),
		InvoiceDate:   inv.InvoiceDate,
		Lines:         lineResponses,
		TotalAmount:   inv.TotalAmount().MinorUnits(),
		TotalProfit:   inv.TotalProfit().MinorUnits(),
		TotalDiscount: inv.TotalDiscount().MinorUnits(),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.CustomerID != nil {
		v := inv.CustomerID.Value()
		resp.CustomerID = &v
	}
	if inv.PaymentMethod != nil {
		v := string(*inv.PaymentMethod)
		resp.PaymentMethod = &v
	}
	return resp
}

// ToInvoiceResponses converts a slice of domain Invoices
func ToInvoiceResponses(invoices []invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
