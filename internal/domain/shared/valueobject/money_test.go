package valueobject

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpos/backend/internal/domain/shared"
)

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"whole units", "12", 1200, false},
		{"two decimals", "12.50", 1250, false},
		{"negative", "-3.25", -325, false},
		{"zero", "0", 0, false},
		{"sub-cent precision", "1.005", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.MinorUnits())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add then subtract", func(t *testing.T) {
		m, err := NewMoney(1000).Add(NewMoney(500))
		require.NoError(t, err)
		m, err = m.Subtract(NewMoney(300))
		require.NoError(t, err)
		assert.True(t, m.Equals(NewMoney(1200)))
	})

	t.Run("scale by quantity", func(t *testing.T) {
		m, err := NewMoney(100).Scale(3)
		require.NoError(t, err)
		assert.Equal(t, int64(300), m.MinorUnits())
	})

	t.Run("scale by zero", func(t *testing.T) {
		m, err := NewMoney(100).Scale(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("negate", func(t *testing.T) {
		m, err := NewMoney(250).Negate()
		require.NoError(t, err)
		assert.Equal(t, int64(-250), m.MinorUnits())
	})
}

func TestMoney_Overflow(t *testing.T) {
	t.Run("add overflows", func(t *testing.T) {
		_, err := NewMoney(math.MaxInt64).Add(NewMoney(1))
		assert.ErrorIs(t, err, shared.ErrOverflow)
	})

	t.Run("subtract overflows", func(t *testing.T) {
		_, err := NewMoney(math.MinInt64).Subtract(NewMoney(1))
		assert.ErrorIs(t, err, shared.ErrOverflow)
	})

	t.Run("scale overflows", func(t *testing.T) {
		_, err := NewMoney(math.MaxInt64 / 2).Scale(3)
		assert.ErrorIs(t, err, shared.ErrOverflow)
	})

	t.Run("negate min int", func(t *testing.T) {
		_, err := NewMoney(math.MinInt64).Negate()
		assert.ErrorIs(t, err, shared.ErrOverflow)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	assert.True(t, NewMoney(100).LessThan(NewMoney(200)))
	assert.True(t, NewMoney(200).GreaterThan(NewMoney(100)))
	assert.True(t, NewMoney(100).Equals(NewMoney(100)))
	assert.True(t, NewMoney(-1).IsNegative())
	assert.True(t, NewMoney(1).IsPositive())
	assert.True(t, ZeroMoney().IsZero())
}

func TestMoney_DisplayProjection(t *testing.T) {
	t.Run("string keeps two decimals", func(t *testing.T) {
		assert.Equal(t, "12.50", NewMoney(1250).String())
		assert.Equal(t, "-0.05", NewMoney(-5).String())
	})

	t.Run("percent of base", func(t *testing.T) {
		profit := NewMoney(250)
		price := NewMoney(1000)
		pct, ok := profit.PercentOf(price)
		require.True(t, ok)
		assert.Equal(t, "25.0", pct.String())
	})

	t.Run("percent rounds half up at display scale", func(t *testing.T) {
		pct, ok := NewMoney(125).PercentOf(NewMoney(1000))
		require.True(t, ok)
		assert.Equal(t, "12.5", pct.String())

		pct, ok = NewMoney(1249).PercentOf(NewMoney(10000))
		require.True(t, ok)
		assert.Equal(t, "12.5", pct.String())
	})

	t.Run("percent of zero base reports unknown", func(t *testing.T) {
		_, ok := NewMoney(100).PercentOf(ZeroMoney())
		assert.False(t, ok)
	})
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(NewMoney(1250))
	require.NoError(t, err)
	assert.Equal(t, "1250", string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte("1250"), &m))
	assert.Equal(t, int64(1250), m.MinorUnits())

	assert.Error(t, json.Unmarshal([]byte(`"12.50"`), &m))
}

func TestMoney_SQL(t *testing.T) {
	v, err := NewMoney(777).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(777), v)

	var m Money
	require.NoError(t, m.Scan(int64(777)))
	assert.Equal(t, int64(777), m.MinorUnits())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan("777"))
}
