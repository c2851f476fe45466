package ledger

import (
	"sort"

	"github.com/stockpos/backend/internal/domain/shared"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

// ReconstructStock folds the movements of a single product over a known
// baseline and returns the resulting stock count. Movements are folded in
// chronological order; a partial sum below zero means a compensating
// movement is missing upstream, so the fold reports a LedgerInconsistency
// instead of clamping. The fold is pure and safe to run concurrently on any
// number of snapshots.
func ReconstructStock(baseline valueobject.StockQuantity, movements []StockMovement) (valueobject.StockQuantity, error) {
	ordered := make([]StockMovement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
	})

	running := baseline.Value()
	productID := int64(0)
	for _, m := range ordered {
		if productID == 0 {
			productID = m.ProductID.Value()
		} else if m.ProductID.Value() != productID {
			return valueobject.StockQuantity{}, shared.NewIntegrityViolation(
				"cannot fold movements of product %d into the ledger of product %d",
				m.ProductID.Value(), productID)
		}
		running += m.Change.Value()
		if running < 0 {
			return valueobject.StockQuantity{}, shared.NewLedgerInconsistency(m.ProductID.Value(),
				"fold went negative (%d) at movement occurred %s", running, m.OccurredAt.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	return valueobject.NewStockQuantity(running)
}

// Reconcile checks that the stock reconstructed from the ledger matches the
// stored product stock. A mismatch is reported as a LedgerInconsistency so
// the operator can append the missing compensating movement; it is never
// auto-corrected here.
func Reconcile(productID valueobject.ProductID, stored valueobject.StockQuantity, baseline valueobject.StockQuantity, movements []StockMovement) error {
	reconstructed, err := ReconstructStock(baseline, movements)
	if err != nil {
		return err
	}
	if reconstructed.Value() != stored.Value() {
		return shared.NewLedgerInconsistency(productID.Value(),
			"reconstructed stock %d does not match stored stock %d",
			reconstructed.Value(), stored.Value())
	}
	return nil
}
