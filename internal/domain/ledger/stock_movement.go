package ledger

import (
	"time"

	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// MovementReason is the closed set of business reasons a stock level can change
type MovementReason string

const (
	ReasonSale           MovementReason = "SALE"
	ReasonPurchase       MovementReason = "PURCHASE"
	ReasonReturn         MovementReason = "RETURN"
	ReasonPurchaseReturn MovementReason = "PURCHASE_RETURN"
	ReasonManualAdjust   MovementReason = "MANUAL_ADJUST"
	ReasonDamage         MovementReason = "DAMAGE"
	ReasonExpired        MovementReason = "EXPIRED"
	ReasonLost           MovementReason = "LOST"
	ReasonTheft          MovementReason = "THEFT"
	ReasonInventoryCount MovementReason = "INVENTORY_COUNT"
	ReasonTransferIn     MovementReason = "TRANSFER_IN"
	ReasonTransferOut    MovementReason = "TRANSFER_OUT"
	ReasonRestock        MovementReason = "RESTOCK"
	ReasonPromotion      MovementReason = "PROMOTION"
)

// String returns the string representation of MovementReason
func (r MovementReason) String() string {
	return string(r)
}

// IsValid returns true if the reason is part of the closed enumeration
func (r MovementReason) IsValid() bool {
	switch r {
	case ReasonSale, ReasonPurchase, ReasonReturn, ReasonPurchaseReturn,
		ReasonManualAdjust, ReasonDamage, ReasonExpired, ReasonLost,
		ReasonTheft, ReasonInventoryCount, ReasonTransferIn,
		ReasonTransferOut, ReasonRestock, ReasonPromotion:
		return true
	}
	return false
}

// IsLoss returns true for reasons that represent shrinkage needing operator
// attention
func (r MovementReason) IsLoss() bool {
	switch r {
	case ReasonDamage, ReasonExpired, ReasonLost, ReasonTheft:
		return true
	}
	return false
}

// MovementType is the direction of a movement, derived from the delta sign
type MovementType string

const (
	MovementInbound  MovementType = "INBOUND"
	MovementOutbound MovementType = "OUTBOUND"
)

// ImpactSeverity triages loss movements by magnitude
type ImpactSeverity string

const (
	SeverityHigh   ImpactSeverity = "HIGH"
	SeverityMedium ImpactSeverity = "MEDIUM"
	SeverityLow    ImpactSeverity = "LOW"
)

// Severity thresholds in units.
const (
	highImpactUnits   = 50
	mediumImpactUnits = 10
)

// StockMovement is an immutable, reason-coded record of a single stock delta.
// Once created a movement is never edited - corrections are made by appending
// a compensating movement. The ordered sequence of movements is the source of
// truth for a product's stock history.
type StockMovement struct {
	shared.BaseEntity
	ProductID       valueobject.ProductID
	Change          valueobject.QuantityChange
	Reason          MovementReason
	SourceInvoiceID *valueobject.InvoiceID
	Note            *valueobject.Note
	OccurredAt      time.Time
}

// NewStockMovement creates a movement for the given product and signed delta.
// The delta must be non-zero and within bounds; the reason must be one of the
// closed enumeration.
func NewStockMovement(productID valueobject.ProductID, delta int64, reason MovementReason, now time.Time) (*StockMovement, error) {
	if productID.IsZero() {
		return nil, shared.NewValidationError("product_id", "movement requires a persisted product")
	}
	change, err := valueobject.NewQuantityChange(delta)
	if err != nil {
		return nil, err
	}
	if !reason.IsValid() {
		return nil, shared.NewValidationError("reason", "unknown movement reason")
	}

	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(now),
		ProductID:  productID,
		Change:     change,
		Reason:     reason,
		OccurredAt: now,
	}, nil
}

// WithSourceInvoice links the movement to the invoice that caused it
func (m *StockMovement) WithSourceInvoice(invoiceID valueobject.InvoiceID) *StockMovement {
	m.SourceInvoiceID = &invoiceID
	return m
}

// WithNote attaches an operator note
func (m *StockMovement) WithNote(note valueobject.Note) *StockMovement {
	m.Note = &note
	return m
}

// WithOccurredAt backdates the movement
func (m *StockMovement) WithOccurredAt(at time.Time) *StockMovement {
	m.OccurredAt = at
	return m
}

// Classify derives the movement direction from the delta sign
func (m *StockMovement) Classify() MovementType {
	if m.Change.IsInbound() {
		return MovementInbound
	}
	return MovementOutbound
}

// IsInbound returns true if the movement adds stock
func (m *StockMovement) IsInbound() bool {
	return m.Change.IsInbound()
}

// IsOutbound returns true if the movement removes stock
func (m *StockMovement) IsOutbound() bool {
	return m.Change.IsOutbound()
}

// ImpactSeverity classifies loss movements by magnitude for operator triage.
// The second return is false for non-loss reasons. Pure classification, no
// side effects.
func (m *StockMovement) ImpactSeverity() (ImpactSeverity, bool) {
	if !m.Reason.IsLoss() {
		return "", false
	}
	magnitude := m.Change.Magnitude()
	switch {
	case magnitude >= highImpactUnits:
		return SeverityHigh, true
	case magnitude >= mediumImpactUnits:
		return SeverityMedium, true
	default:
		return SeverityLow, true
	}
}
