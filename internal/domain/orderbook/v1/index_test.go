package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedOrder(t *testing.T, id string, side string, price int64, sequence uint64) *Order {
	t.Helper()
	order, err := NewOrder(id, side, decimal.NewFromInt(price), 5)
	require.NoError(t, err)
	order.Sequence = sequence
	return order
}

func TestPriceIndex_BidOrdering(t *testing.T) {
	index := NewBidIndex()
	index.Push(indexedOrder(t, "B1", "buy", 100, 1))
	index.Push(indexedOrder(t, "B2", "buy", 110, 2))
	index.Push(indexedOrder(t, "B3", "buy", 105, 3))

	// Highest price first.
	entry, ok := index.Pop()
	require.True(t, ok)
	assert.Equal(t, "B2", entry.OrderID)

	entry, _ = index.Pop()
	assert.Equal(t, "B3", entry.OrderID)

	entry, _ = index.Pop()
	assert.Equal(t, "B1", entry.OrderID)

	_, ok = index.Pop()
	assert.False(t, ok)
}

func TestPriceIndex_AskOrdering(t *testing.T) {
	index := NewAskIndex()
	index.Push(indexedOrder(t, "S1", "sell", 100, 1))
	index.Push(indexedOrder(t, "S2", "sell", 90, 2))
	index.Push(indexedOrder(t, "S3", "sell", 95, 3))

	// Lowest price first.
	entry, ok := index.Pop()
	require.True(t, ok)
	assert.Equal(t, "S2", entry.OrderID)

	entry, _ = index.Pop()
	assert.Equal(t, "S3", entry.OrderID)

	entry, _ = index.Pop()
	assert.Equal(t, "S1", entry.OrderID)
}

func TestPriceIndex_SequenceBreaksTies(t *testing.T) {
	testCases := []struct {
		name     string
		index    *PriceIndex
		side     string
		expected []string
	}{
		{name: "bids", index: NewBidIndex(), side: "buy", expected: []string{"O1", "O2", "O3"}},
		{name: "asks", index: NewAskIndex(), side: "sell", expected: []string{"O1", "O2", "O3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Insert out of sequence order to exercise the heap.
			tc.index.Push(indexedOrder(t, "O2", tc.side, 100, 2))
			tc.index.Push(indexedOrder(t, "O3", tc.side, 100, 3))
			tc.index.Push(indexedOrder(t, "O1", tc.side, 100, 1))

			var popped []string
			for tc.index.Len() > 0 {
				entry, _ := tc.index.Pop()
				popped = append(popped, entry.OrderID)
			}
			assert.Equal(t, tc.expected, popped)
		})
	}
}

func TestPriceIndex_PeekDoesNotRemove(t *testing.T) {
	index := NewBidIndex()

	_, ok := index.Peek()
	assert.False(t, ok)

	index.Push(indexedOrder(t, "B1", "buy", 100, 1))

	entry, ok := index.Peek()
	require.True(t, ok)
	assert.Equal(t, "B1", entry.OrderID)
	assert.Equal(t, 1, index.Len())
}

func TestPriceIndex_ReinsertKeepsPriority(t *testing.T) {
	index := NewAskIndex()
	first := indexedOrder(t, "S1", "sell", 100, 1)
	index.Push(first)
	index.Push(indexedOrder(t, "S2", "sell", 100, 2))

	// A partially filled order goes back with its original sequence and
	// must still rank ahead of later arrivals at the same price.
	entry, _ := index.Pop()
	require.Equal(t, "S1", entry.OrderID)
	first.Quantity = 2
	index.Push(first)

	entry, _ = index.Peek()
	assert.Equal(t, "S1", entry.OrderID)
}
