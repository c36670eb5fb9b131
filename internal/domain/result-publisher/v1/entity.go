package resultpublisherv1

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/order-reader/v1"
)

// ResultEvent reports the outcome of one order stream request.
type ResultEvent struct {
	Instrument  string      `json:"instrument"`
	OrderID     string      `json:"orderID"`
	RequestType string      `json:"requestType"`
	Status      string      `json:"status"`
	Rejected    bool        `json:"rejected"`
	Fills       []FillEvent `json:"fills,omitempty"`
	Offset      int64       `json:"offset"`
	Timestamp   time.Time   `json:"timestamp"`
}

// FillEvent is one fill within a placement result.
type FillEvent struct {
	OrderID  string `json:"orderID"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

// CreateFromPlacement builds the event for an accepted placement.
func CreateFromPlacement(instrument string, result *orderbookv1.PlaceResult, offset int64) *ResultEvent {
	event := &ResultEvent{
		Instrument:  instrument,
		OrderID:     result.OrderID,
		RequestType: string(orderreaderv1.RequestTypePlace),
		Status:      result.String(),
		Offset:      offset,
		Timestamp:   time.Now().UTC(),
	}

	for _, fill := range result.Fills {
		event.Fills = append(event.Fills, FillEvent{
			OrderID:  fill.OrderID,
			Quantity: fill.Quantity,
			Price:    fill.Price.String(),
		})
	}

	return event
}

// CreateFromCancel builds the event for a cancel outcome.
func CreateFromCancel(instrument, orderID string, status orderbookv1.CancelStatus, offset int64) *ResultEvent {
	return &ResultEvent{
		Instrument:  instrument,
		OrderID:     orderID,
		RequestType: string(orderreaderv1.RequestTypeCancel),
		Status:      string(status),
		Offset:      offset,
		Timestamp:   time.Now().UTC(),
	}
}

// CreateRejection builds the event for a request that failed structurally.
func CreateRejection(instrument, orderID string, requestType orderreaderv1.RequestType, reason error, offset int64) *ResultEvent {
	return &ResultEvent{
		Instrument:  instrument,
		OrderID:     orderID,
		RequestType: string(requestType),
		Status:      reason.Error(),
		Rejected:    true,
		Offset:      offset,
		Timestamp:   time.Now().UTC(),
	}
}

// ToBytes converts the result event to a byte array.
func (e *ResultEvent) ToBytes() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to a result event.
func FromBytes(data []byte) *ResultEvent {
	var event ResultEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
