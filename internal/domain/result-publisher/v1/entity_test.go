package resultpublisherv1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderreaderv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/order-reader/v1"
	orderbookv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/orderbook/v1"
	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
)

func TestCreateFromPlacement(t *testing.T) {
	result := &orderbookv1.PlaceResult{
		OrderID: "S1",
		Fills: []orderbookv1.Fill{
			{OrderID: "B1", Quantity: 5, Price: decimal.NewFromInt(100)},
			{OrderID: "B2", Quantity: 3, Price: decimal.NewFromInt(100)},
		},
	}

	event := CreateFromPlacement("BTC-USD", result, 7)

	assert.Equal(t, "BTC-USD", event.Instrument)
	assert.Equal(t, "S1", event.OrderID)
	assert.Equal(t, string(orderreaderv1.RequestTypePlace), event.RequestType)
	assert.Equal(t, "Fully matched with B1 (5 @ 100) and B2 (3 @ 100)", event.Status)
	assert.False(t, event.Rejected)
	assert.Equal(t, int64(7), event.Offset)
	require.Len(t, event.Fills, 2)
	assert.Equal(t, FillEvent{OrderID: "B1", Quantity: 5, Price: "100"}, event.Fills[0])
	assert.Equal(t, FillEvent{OrderID: "B2", Quantity: 3, Price: "100"}, event.Fills[1])
	assert.False(t, event.Timestamp.IsZero())
}

func TestCreateFromCancel(t *testing.T) {
	event := CreateFromCancel("BTC-USD", "O1", orderbookv1.CancelNoActiveOrder, 3)

	assert.Equal(t, "O1", event.OrderID)
	assert.Equal(t, string(orderreaderv1.RequestTypeCancel), event.RequestType)
	assert.Equal(t, "Failed – no such active order", event.Status)
	assert.False(t, event.Rejected)
	assert.Empty(t, event.Fills)
}

func TestCreateRejection(t *testing.T) {
	cause := errors.NewErrorDetails("invalid order side", string(errors.InvalidSide), "side")

	event := CreateRejection("BTC-USD", "X1", orderreaderv1.RequestTypePlace, cause, 9)

	assert.True(t, event.Rejected)
	assert.Equal(t, "invalid order side", event.Status)
	assert.Equal(t, int64(9), event.Offset)
}

func TestResultEvent_RoundTrip(t *testing.T) {
	event := CreateFromCancel("BTC-USD", "O1", orderbookv1.CancelOK, 12)

	raw := event.ToBytes()
	require.NotNil(t, raw)

	decoded := FromBytes(raw)
	require.NotNil(t, decoded)
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, event.Status, decoded.Status)
	assert.Equal(t, event.Offset, decoded.Offset)
}
