package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductID(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantErr bool
	}{
		{"positive", 7, false},
		{"zero is not a reference", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewProductID(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, id.Value())
			assert.False(t, id.IsZero())
		})
	}
}

func TestIdentifier_ZeroSentinel(t *testing.T) {
	var pid ProductID
	assert.True(t, pid.IsZero())
	assert.Equal(t, int64(0), pid.Value())

	var iid InvoiceID
	assert.True(t, iid.IsZero())

	var cid CustomerID
	assert.True(t, cid.IsZero())
}

func TestNewInvoiceID(t *testing.T) {
	_, err := NewInvoiceID(0)
	assert.Error(t, err)

	id, err := NewInvoiceID(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.Value())
}
