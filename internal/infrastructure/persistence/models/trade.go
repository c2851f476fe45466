package models

import (
	"time"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate header.
// Lines live in their own table and are loaded with the header; totals are
// derived on load and never stored.
type InvoiceModel struct {
	BaseModel
	Prefix        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_invoice_prefix_number,priority:1"`
	Number        int64     `gorm:"not null;uniqueIndex:idx_invoice_prefix_number,priority:2"`
	InvoiceDate   time.Time `gorm:"not null;index"`
	Type          string    `gorm:"type:varchar(10);not null;index"`
	CustomerID    *int64    `gorm:"index"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	PaymentMethod *string   `gorm:"type:varchar(10)"`

	Lines []InvoiceLineModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for one invoice line item.
// A product appears at most once per invoice.
type InvoiceLineModel struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	InvoiceID        int64 `gorm:"not null;uniqueIndex:idx_line_invoice_product,priority:1"`
	ProductID        int64 `gorm:"not null;uniqueIndex:idx_line_invoice_product,priority:2"`
	Quantity         int64 `gorm:"not null"`
	PriceAtSaleMinor int64 `gorm:"not null"`
	CostAtSaleMinor  int64 `gorm:"not null"`
	DiscountMinor    int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// InvoiceSequenceModel holds the per-prefix invoice number counter.
// NextNumber increments it inside the commit transaction so numbers stay
// gapless per prefix.
type InvoiceSequenceModel struct {
	Prefix     string `gorm:"type:varchar(10);primaryKey"`
	LastNumber int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}

// ToDomain converts the persistence model, lines included, to a domain
// Invoice. The aggregate re-derives its totals and re-checks line integrity
// on the way in.
func (m *InvoiceModel) ToDomain() (*invoice.Invoice, error) {
	var customerID *valueobject.CustomerID
	if m.CustomerID != nil {
		id, err := valueobject.NewCustomerID(*m.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &id
	}

	var method *invoice.PaymentMethod
	if m.PaymentMethod != nil {
		pm := invoice.PaymentMethod(*m.PaymentMethod)
		method = &pm
	}

	lines := make([]invoice.InvoiceLine, 0, len(m.Lines))
	for _, lm := range m.Lines {
		line, err := lm.ToDomain()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	inv, err := invoice.RestoreInvoice(
		m.BaseModel.ToDomain(),
		m.Prefix,
		m.Number,
		m.InvoiceDate,
		invoice.InvoiceType(m.Type),
		customerID,
		invoice.InvoiceStatus(m.Status),
		method,
		lines,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.Prefix = inv.Prefix
	m.Number = inv.Number
	m.InvoiceDate = inv.InvoiceDate
	m.Type = string(inv.Type)
	m.Status = string(inv.Status)

	m.CustomerID = nil
	if inv.CustomerID != nil {
		customerID := inv.CustomerID.Value()
		m.CustomerID = &customerID
	}
	m.PaymentMethod = nil
	if inv.PaymentMethod != nil {
		method := string(*inv.PaymentMethod)
		m.PaymentMethod = &method
	}

	domainLines := inv.Lines()
	m.Lines = make([]InvoiceLineModel, 0, len(domainLines))
	for _, line := range domainLines {
		var lm InvoiceLineModel
		lm.FromDomain(line)
		lm.InvoiceID = inv.ID
		m.Lines = append(m.Lines, lm)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// ToDomain converts the persistence model to a domain InvoiceLine.
func (m *InvoiceLineModel) ToDomain() (invoice.InvoiceLine, error) {
	invoiceID, err := valueobject.NewInvoiceID(m.InvoiceID)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}
	productID, err := valueobject.NewProductID(m.ProductID)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}
	quantity, err := valueobject.NewSalesQuantity(m.Quantity)
	if err != nil {
		return invoice.InvoiceLine{}, err
	}
	return invoice.NewInvoiceLine(
		invoiceID,
		productID,
		quantity,
		valueobject.NewMoney(m.PriceAtSaleMinor),
		valueobject.NewMoney(m.CostAtSaleMinor),
		valueobject.NewMoney(m.DiscountMinor),
	)
}

// FromDomain populates the persistence model from a domain InvoiceLine.
func (m *InvoiceLineModel) FromDomain(line invoice.InvoiceLine) {
	m.InvoiceID = line.InvoiceID.Value()
	m.ProductID = line.ProductID.Value()
	m.Quantity = line.Quantity.Value()
	m.PriceAtSaleMinor = line.PriceAtSale.MinorUnits()
	m.CostAtSaleMinor = line.CostAtSale.MinorUnits()
	m.DiscountMinor = line.Discount.MinorUnits()
}
