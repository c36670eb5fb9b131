package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
)

func TestParseSide(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected Side
		wantErr  bool
	}{
		{name: "lowercase buy", value: "buy", expected: SideBuy},
		{name: "lowercase sell", value: "sell", expected: SideSell},
		{name: "mixed case", value: "Buy", expected: SideBuy},
		{name: "uppercase", value: "SELL", expected: SideSell},
		{name: "unknown side", value: "hold", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			side, err := ParseSide(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidSide))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, side)
		})
	}
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		order, err := NewOrder("AAA", "Buy", decimal.NewFromInt(100), 5)

		require.NoError(t, err)
		assert.Equal(t, "AAA", order.ID)
		assert.Equal(t, SideBuy, order.Side)
		assert.True(t, decimal.NewFromInt(100).Equal(order.Price))
		assert.Equal(t, int64(5), order.Quantity)
		assert.Equal(t, uint64(0), order.Sequence) // assigned by the book
	})

	t.Run("unrecognized side", func(t *testing.T) {
		_, err := NewOrder("AAA", "short", decimal.NewFromInt(100), 5)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidSide))
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewOrder("", "buy", decimal.NewFromInt(100), 5)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidParameters))
	})

	t.Run("zero price", func(t *testing.T) {
		_, err := NewOrder("AAA", "buy", decimal.Zero, 5)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidParameters))
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewOrder("AAA", "sell", decimal.NewFromInt(-10), 5)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidParameters))
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := NewOrder("AAA", "buy", decimal.NewFromInt(100), 0)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidParameters))
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := NewOrder("AAA", "buy", decimal.NewFromInt(100), -1)
		require.Error(t, err)
		assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidParameters))
	})
}

func TestOrder_Crosses(t *testing.T) {
	buy, err := NewOrder("B1", "buy", decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	sell, err := NewOrder("S1", "sell", decimal.NewFromInt(100), 5)
	require.NoError(t, err)

	// A buy crosses at or below its limit.
	assert.True(t, buy.Crosses(decimal.NewFromInt(90)))
	assert.True(t, buy.Crosses(decimal.NewFromInt(100)))
	assert.False(t, buy.Crosses(decimal.NewFromInt(101)))

	// A sell crosses at or above its limit.
	assert.True(t, sell.Crosses(decimal.NewFromInt(110)))
	assert.True(t, sell.Crosses(decimal.NewFromInt(100)))
	assert.False(t, sell.Crosses(decimal.NewFromInt(99)))
}

func TestOrder_IsFilled(t *testing.T) {
	order, err := NewOrder("AAA", "buy", decimal.NewFromInt(100), 5)
	require.NoError(t, err)

	assert.False(t, order.IsFilled())
	order.Quantity = 0
	assert.True(t, order.IsFilled())
}
