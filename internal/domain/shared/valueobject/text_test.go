package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Espresso Beans 1kg", "Espresso Beans 1kg", false},
		{"trims whitespace", "  Milk  ", "Milk", false},
		{"blank", "   ", "", true},
		{"too long", strings.Repeat("a", 201), "", true},
		{"at limit", strings.Repeat("a", 200), strings.Repeat("a", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewProductName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Value())
		})
	}
}

func TestNewBarcode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ean13", "4006381333931", false},
		{"alnum with separators", "SKU_2024-A", false},
		{"too short", "123", true},
		{"too long", strings.Repeat("9", 51), true},
		{"invalid characters", "abc 123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBarcode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, b.Value())
		})
	}
}

func TestNewNote(t *testing.T) {
	_, err := NewNote("")
	assert.Error(t, err)

	_, err = NewNote(strings.Repeat("x", 501))
	assert.Error(t, err)

	n, err := NewNote("damaged in transit")
	require.NoError(t, err)
	assert.Equal(t, "damaged in transit", n.Value())
}
