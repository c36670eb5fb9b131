package orderbookv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryOrder(t *testing.T, id string) *Order {
	t.Helper()
	order, err := NewOrder(id, "buy", decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	return order
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	order := newRegistryOrder(t, "AAA")

	assert.False(t, r.Contains("AAA"))

	r.InsertActive(order)
	assert.True(t, r.Contains("AAA"))
	assert.True(t, r.IsActive("AAA"))
	assert.False(t, r.IsFilled("AAA"))

	got, ok := r.Active("AAA")
	require.True(t, ok)
	assert.Same(t, order, got)

	assert.True(t, r.MoveToFilled("AAA"))
	assert.False(t, r.IsActive("AAA"))
	assert.True(t, r.IsFilled("AAA"))
	assert.True(t, r.Contains("AAA"))

	// A terminal id never transitions again.
	assert.False(t, r.MoveToFilled("AAA"))
	assert.False(t, r.MoveToCanceled("AAA"))
}

func TestRegistry_MoveToCanceled(t *testing.T) {
	r := NewRegistry()
	r.InsertActive(newRegistryOrder(t, "BBB"))

	assert.True(t, r.MoveToCanceled("BBB"))
	assert.False(t, r.IsActive("BBB"))
	assert.False(t, r.IsFilled("BBB"))
	assert.True(t, r.Contains("BBB"))

	// Cancel of an unknown id is the caller's problem, not the registry's.
	assert.False(t, r.MoveToCanceled("missing"))
}

func TestRegistry_InsertFilledDirectly(t *testing.T) {
	r := NewRegistry()

	// An incoming order consumed on arrival is never active.
	filled := newRegistryOrder(t, "CCC")
	filled.Quantity = 0
	r.InsertFilled(filled)

	assert.True(t, r.Contains("CCC"))
	assert.True(t, r.IsFilled("CCC"))
	assert.False(t, r.IsActive("CCC"))
}

func TestRegistry_Collections(t *testing.T) {
	r := NewRegistry()
	r.InsertActive(newRegistryOrder(t, "A1"))
	r.InsertActive(newRegistryOrder(t, "A2"))
	r.MoveToFilled("A1")

	assert.Equal(t, 1, r.ActiveCount())
	assert.Len(t, r.ActiveOrders(), 1)
	assert.Len(t, r.FilledOrders(), 1)
	assert.Empty(t, r.CanceledOrders())
}
