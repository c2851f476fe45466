package models

import (
	"time"

	"github.com/stockpos/backend/internal/domain/ledger"
	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// StockMovementModel is the persistence model for the append-only stock
// ledger. Rows are never updated or deleted.
type StockMovementModel struct {
	BaseModel
	ProductID       int64  `gorm:"not null;index"`
	Delta           int64  `gorm:"not null"`
	Reason          string `gorm:"type:varchar(20);not null;index"`
	SourceInvoiceID *int64 `gorm:"index"`
	Note            *string
	OccurredAt      time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement.
func (m *StockMovementModel) ToDomain() (*ledger.StockMovement, error) {
	productID, err := valueobject.NewProductID(m.ProductID)
	if err != nil {
		return nil, err
	}
	change, err := valueobject.NewQuantityChange(m.Delta)
	if err != nil {
		return nil, err
	}
	reason := ledger.MovementReason(m.Reason)
	if !reason.IsValid() {
		return nil, shared.NewValidationError("reason", "unknown movement reason")
	}

	movement := ledger.StockMovement{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  productID,
		Change:     change,
		Reason:     reason,
		OccurredAt: m.OccurredAt,
	}

	if m.SourceInvoiceID != nil {
		invoiceID, err := valueobject.NewInvoiceID(*m.SourceInvoiceID)
		if err != nil {
			return nil, err
		}
		movement.SourceInvoiceID = &invoiceID
	}
	if m.Note != nil {
		note, err := valueobject.NewNote(*m.Note)
		if err != nil {
			return nil, err
		}
		movement.Note = &note
	}

	return &movement, nil
}

// FromDomain populates the persistence model from a domain StockMovement.
func (m *StockMovementModel) FromDomain(movement *ledger.StockMovement) {
	m.FromDomainBaseEntity(movement.BaseEntity)
	m.ProductID = movement.ProductID.Value()
	m.Delta = movement.Change.Value()
	m.Reason = string(movement.Reason)
	m.OccurredAt = movement.OccurredAt

	m.SourceInvoiceID = nil
	if movement.SourceInvoiceID != nil {
		invoiceID := movement.SourceInvoiceID.Value()
		m.SourceInvoiceID = &invoiceID
	}
	m.Note = nil
	if movement.Note != nil {
		note := movement.Note.Value()
		m.Note = &note
	}
}

// StockMovementModelFromDomain creates a new persistence model from a domain
// StockMovement.
func StockMovementModelFromDomain(movement *ledger.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomain(movement)
	return m
}
