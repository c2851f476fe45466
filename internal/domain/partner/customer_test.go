package partner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpos/backend/internal/domain/shared"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name     string
		custName string
		phone    string
		wantErr  bool
	}{
		{"valid", "Alice Martin", "+49 170 1234567", false},
		{"phone optional", "Walk-in", "", false},
		{"trims input", "  Bob  ", "  12345  ", false},
		{"blank name", "   ", "", true},
		{"name too long", strings.Repeat("a", 201), "", true},
		{"phone too short", "Alice", "1234", true},
		{"phone with letters", "Alice", "call-me-maybe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.custName, tt.phone, testNow)
			if tt.wantErr {
				var vErr *shared.ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.custName), c.Name)
			assert.Equal(t, strings.TrimSpace(tt.phone), c.Phone)
			assert.True(t, c.Active)
			assert.True(t, c.CustomerIDRef().IsZero())
		})
	}
}

func TestCustomer_Rename(t *testing.T) {
	c, err := NewCustomer("Alice", "", testNow)
	require.NoError(t, err)

	renamed, err := c.Rename("Alicia", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Alicia", renamed.Name)
	// original snapshot untouched
	assert.Equal(t, "Alice", c.Name)
	assert.True(t, renamed.UpdatedAt.After(c.UpdatedAt))

	_, err = c.Rename("  ", testNow)
	assert.Error(t, err)
}

func TestCustomer_UpdatePhone(t *testing.T) {
	c, err := NewCustomer("Alice", "12345", testNow)
	require.NoError(t, err)

	updated, err := c.UpdatePhone("+33 (0)6 12 34 56", testNow)
	require.NoError(t, err)
	assert.Equal(t, "+33 (0)6 12 34 56", updated.Phone)

	// clearing the phone is allowed
	cleared, err := c.UpdatePhone("", testNow)
	require.NoError(t, err)
	assert.Empty(t, cleared.Phone)

	_, err = c.UpdatePhone("abc", testNow)
	assert.Error(t, err)
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	c, err := NewCustomer("Alice", "", testNow)
	require.NoError(t, err)

	_, err = c.Activate(testNow)
	assert.Error(t, err, "already active")

	c, err = c.Deactivate(testNow)
	require.NoError(t, err)
	assert.False(t, c.Active)

	_, err = c.Deactivate(testNow)
	assert.Error(t, err, "already inactive")

	c, err = c.Activate(testNow)
	require.NoError(t, err)
	assert.True(t, c.Active)
}
