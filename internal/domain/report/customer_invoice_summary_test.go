package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpos/backend/internal/domain/invoice"
	"github.com/stockpos/backend/internal/domain/shared/valueobject"
)

func testCustomerID(t *testing.T, v int64) valueobject.CustomerID {
	t.Helper()
	id, err := valueobject.NewCustomerID(v)
	require.NoError(t, err)
	return id
}

func TestNewCustomerInvoiceSummary(t *testing.T) {
	_, err := NewCustomerInvoiceSummary(valueobject.CustomerID{})
	assert.Error(t, err)

	s, err := NewCustomerInvoiceSummary(testCustomerID(t, 1))
	require.NoError(t, err)
	assert.Zero(t, s.TotalInvoices)
	assert.True(t, s.TotalDebt().IsZero())
}

func TestCustomerInvoiceSummary_DebtTracking(t *testing.T) {
	s, err := NewCustomerInvoiceSummary(testCustomerID(t, 1))
	require.NoError(t, err)

	s, err = s.AddInvoice(valueobject.NewMoney(5000))
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.TotalInvoices)
	assert.Equal(t, int64(5000), s.TotalDebt().MinorUnits())

	s, err = s.RecordPayment(valueobject.NewMoney(2000))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), s.TotalDebt().MinorUnits())
	assert.Equal(t, int64(2000), s.TotalPaid.MinorUnits())
}

func TestCustomerInvoiceSummary_OverpaymentClampsToZero(t *testing.T) {
	s, err := NewCustomerInvoiceSummary(testCustomerID(t, 1))
	require.NoError(t, err)

	s, err = s.AddInvoice(valueobject.NewMoney(1000))
	require.NoError(t, err)
	s, err = s.RecordPayment(valueobject.NewMoney(1500))
	require.NoError(t, err)

	assert.True(t, s.TotalDebt().IsZero())
	// the raw paid total still shows the overpayment
	assert.Equal(t, int64(1500), s.TotalPaid.MinorUnits())
}

func TestCustomerInvoiceSummary_RejectsNegativeAmounts(t *testing.T) {
	s, err := NewCustomerInvoiceSummary(testCustomerID(t, 1))
	require.NoError(t, err)

	_, err = s.AddInvoice(valueobject.NewMoney(-1))
	assert.Error(t, err)

	_, err = s.RecordPayment(valueobject.NewMoney(-1))
	assert.Error(t, err)
}

func TestFoldCustomerInvoices(t *testing.T) {
	alice := testCustomerID(t, 1)
	bob := testCustomerID(t, 2)

	pendingSale := func(number int64, customerID valueobject.CustomerID, amountMinor int64) invoice.Invoice {
		inv, err := invoice.NewInvoice("INV", number, day1, invoice.TypeSale, &customerID, day1)
		require.NoError(t, err)
		inv = withSaleLine(t, inv, number, 1, amountMinor, 0)
		result, cerr := commitWithID(t, inv, number)
		require.NoError(t, cerr)
		return result
	}

	aliceUnpaid := pendingSale(1, alice, 5000)
	alicePaid, err := pendingSale(2, alice, 3000).MarkAsPaid(invoice.PaymentCash, day1)
	require.NoError(t, err)
	bobUnpaid := pendingSale(3, bob, 700)

	// no customer: ignored by the fold
	anonymous, err := invoice.NewInvoice("INV", 4, day1, invoice.TypeSale, nil, day1)
	require.NoError(t, err)
	anonymous = withSaleLine(t, anonymous, 4, 1, 900, 0)
	anonymous, err = anonymous.MarkAsPaid(invoice.PaymentCash, day1)
	require.NoError(t, err)

	rows, err := FoldCustomerInvoices([]invoice.Invoice{aliceUnpaid, alicePaid, bobUnpaid, anonymous}, testWindow())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].CustomerID.Value())
	assert.Equal(t, int64(2), rows[0].TotalInvoices)
	assert.Equal(t, int64(8000), rows[0].TotalAmount.MinorUnits())
	assert.Equal(t, int64(3000), rows[0].TotalPaid.MinorUnits())
	assert.Equal(t, int64(5000), rows[0].TotalDebt().MinorUnits())

	assert.Equal(t, int64(2), rows[1].CustomerID.Value())
	assert.Equal(t, int64(700), rows[1].TotalDebt().MinorUnits())
}

// commitWithID persists-then-commits a draft the way the application layer
// does: assign an identifier, then derive the movements and status change.
func commitWithID(t *testing.T, inv invoice.Invoice, id int64) (invoice.Invoice, error) {
	t.Helper()
	inv.ID = id
	result, err := inv.Commit(nil, day1)
	if err != nil {
		return invoice.Invoice{}, err
	}
	return result.Invoice, nil
}
