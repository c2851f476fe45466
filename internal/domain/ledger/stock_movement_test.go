package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func testProductID(t *testing.T) valueobject.ProductID {
	t.Helper()
	id, err := valueobject.NewProductID(1)
	require.NoError(t, err)
	return id
}

// ============================================================================
// Creation
// ============================================================================

func TestNewStockMovement(t *testing.T) {
	productID := testProductID(t)

	tests := []struct {
		name    string
		delta   int64
		reason  MovementReason
		wantErr bool
	}{
		{"inbound purchase", 10, ReasonPurchase, false},
		{"outbound sale", -3, ReasonSale, false},
		{"zero delta", 0, ReasonSale, true},
		{"unknown reason", 5, MovementReason("GIFTED"), true},
		{"delta over bound", valueobject.MaxQuantityChange + 1, ReasonPurchase, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewStockMovement(productID, tt.delta, tt.reason, testNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.delta, m.Change.Value())
			assert.Equal(t, tt.reason, m.Reason)
			assert.Equal(t, testNow, m.OccurredAt)
			assert.Nil(t, m.SourceInvoiceID)
			assert.Nil(t, m.Note)
		})
	}
}

func TestNewStockMovement_RequiresPersistedProduct(t *testing.T) {
	_, err := NewStockMovement(valueobject.ProductID{}, 5, ReasonPurchase, testNow)
	var vErr *shared.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestStockMovement_FluentSetters(t *testing.T) {
	m, err := NewStockMovement(testProductID(t), -2, ReasonSale, testNow)
	require.NoError(t, err)

	invoiceID, _ := valueobject.NewInvoiceID(99)
	note, _ := valueobject.NewNote("register 2")
	earlier := testNow.Add(-time.Hour)

	m = m.WithSourceInvoice(invoiceID).WithNote(note).WithOccurredAt(earlier)

	require.NotNil(t, m.SourceInvoiceID)
	assert.Equal(t, int64(99), m.SourceInvoiceID.Value())
	require.NotNil(t, m.Note)
	assert.Equal(t, "register 2", m.Note.Value())
	assert.Equal(t, earlier, m.OccurredAt)
}

// ============================================================================
// Classification
// ============================================================================

func TestStockMovement_Classify(t *testing.T) {
	productID := testProductID(t)

	in, err := NewStockMovement(productID, 10, ReasonPurchase, testNow)
	require.NoError(t, err)
	assert.Equal(t, MovementInbound, in.Classify())
	assert.True(t, in.IsInbound())

	out, err := NewStockMovement(productID, -10, ReasonSale, testNow)
	require.NoError(t, err)
	assert.Equal(t, MovementOutbound, out.Classify())
	assert.True(t, out.IsOutbound())
}

func TestMovementReason_IsLoss(t *testing.T) {
	assert.True(t, ReasonDamage.IsLoss())
	assert.True(t, ReasonExpired.IsLoss())
	assert.True(t, ReasonLost.IsLoss())
	assert.True(t, ReasonTheft.IsLoss())
	assert.False(t, ReasonSale.IsLoss())
	assert.False(t, ReasonManualAdjust.IsLoss())
}

func TestStockMovement_ImpactSeverity(t *testing.T) {
	productID := testProductID(t)

	tests := []struct {
		name     string
		delta    int64
		reason   MovementReason
		want     ImpactSeverity
		relevant bool
	}{
		{"large theft", -80, ReasonTheft, SeverityHigh, true},
		{"at high threshold", -50, ReasonDamage, SeverityHigh, true},
		{"medium damage", -15, ReasonDamage, SeverityMedium, true},
		{"at medium threshold", -10, ReasonExpired, SeverityMedium, true},
		{"small loss", -2, ReasonLost, SeverityLow, true},
		{"sale is not a loss", -80, ReasonSale, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewStockMovement(productID, tt.delta, tt.reason, testNow)
			require.NoError(t, err)

			severity, ok := m.ImpactSeverity()
			assert.Equal(t, tt.relevant, ok)
			if tt.relevant {
				assert.Equal(t, tt.want, severity)
			}
		})
	}
}
