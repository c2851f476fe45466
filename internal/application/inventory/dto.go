package inventory

import (
	"time"

	"github.com/stockpos/backend/internal/domain/ledger"
)

// AdjustStockRequest represents a request to change a product's stock level.
// Delta is signed: positive receives stock, negative removes it.
type AdjustStockRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Delta     int64  `json:"delta" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Note      string `json:"note" binding:"omitempty,max=500"`
}

// MovementListFilter represents filter options for movement history
type MovementListFilter struct {
	ProductID *int64     `form:"product_id" binding:"omitempty,min=1"`
	Reason    string     `form:"reason"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	Delta           int64     `json:"delta"`
	Type            string    `json:"type"`
	Reason          string    `json:"reason"`
	SourceInvoiceID *int64    `json:"source_invoice_id,omitempty"`
	Note            *string   `json:"note,omitempty"`
	ImpactSeverity  *string   `json:"impact_severity,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// AdjustStockResponse carries the outcome of a stock adjustment
type AdjustStockResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    int64            `json:"stock"`
}

// ReconcileResponse reports the ledger check for one product
type ReconcileResponse struct {
	ProductID          int64  `json:"product_id"`
	StoredStock        int64  `json:"stored_stock"`
	ReconstructedStock int64  `json:"reconstructed_stock"`
	Consistent         bool   `json:"consistent"`
	Detail             string `json:"detail,omitempty"`
}

// ToMovementResponse converts a domain StockMovement to MovementResponse
func ToMovementResponse(m *ledger.StockMovement) MovementResponse {
	resp := MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID.Value(),
		Delta:      m.Change.Value(),
		Type:       string(m.Classify()),
		Reason:     m.Reason.String(),
		OccurredAt: m.OccurredAt,
	}
	if m.SourceInvoiceID != nil {
		v := m.SourceInvoiceID.Value()
		resp.SourceInvoiceID = &v
	}
	if m.Note != nil {
		v := m.Note.Value()
		resp.Note = &v
	}
	if severity, ok := m.ImpactSeverity(); ok {
		v := string(severity)
		resp.ImpactSeverity = &v
	}
	return resp
}

// ToMovementResponses converts a slice of domain StockMovements
func ToMovementResponses(movements []ledger.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}
