package orderreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// RequestType distinguishes the commands carried by the order stream.
type RequestType string

const (
	// RequestTypePlace submits a new limit order.
	RequestTypePlace RequestType = "place"
	// RequestTypeCancel cancels an active order.
	RequestTypeCancel RequestType = "cancel"
)

// OrderRequest is one command consumed from the order topic.
type OrderRequest struct {
	OrderID  string      `json:"orderID"`
	Type     RequestType `json:"type"`
	Side     string      `json:"side"`
	Price    float64     `json:"price"`
	Quantity int64       `json:"quantity"`

	// Offset is the position of the message in the stream, set by the reader.
	Offset int64 `json:"-"`
}

// OrderReader defines the interface for reading order requests from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// ReadMessage reads a message and returns it with the parsed request.
	ReadMessage(ctx context.Context) (kafka.Message, OrderRequest, error)
	// SetOffset sets the offset for the reader.
	SetOffset(offset int64) error
	// CommitMessages commits the messages after processing.
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	// Close closes the reader.
	Close() error
}
