package orderbookv1

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
)

// Side identifies which half of the book an order rests on.
type Side string

const (
	// SideBuy marks a bid.
	SideBuy Side = "buy"
	// SideSell marks an ask.
	SideSell Side = "sell"
)

// ParseSide normalizes a wire-level side value.
func ParseSide(value string) (Side, error) {
	switch Side(strings.ToLower(value)) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", errors.NewErrorDetails(
			fmt.Sprintf("unrecognized side %q", value),
			string(errors.InvalidSide),
			"side",
		)
	}
}

// Opposite returns the side this side trades against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Order is a single submitted order. ID, Side, Price and Sequence are fixed
// for the order's lifetime; Quantity only decreases, through matching.
// While an order is active its quantity is strictly positive.
type Order struct {
	ID       string
	Side     Side
	Price    decimal.Decimal
	Quantity int64
	Sequence uint64
}

// NewOrder validates the request parameters and builds an order record.
// The sequence number is assigned later, by the book that accepts the order.
func NewOrder(id string, side string, price decimal.Decimal, quantity int64) (*Order, error) {
	parsedSide, err := ParseSide(side)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.NewErrorDetails("order id cannot be empty", string(errors.InvalidParameters), "orderID")
	}
	if !price.IsPositive() {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("price must be positive, got %s", price),
			string(errors.InvalidParameters),
			"price",
		)
	}
	if quantity <= 0 {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("quantity must be positive, got %d", quantity),
			string(errors.InvalidParameters),
			"quantity",
		)
	}

	return &Order{
		ID:       id,
		Side:     parsedSide,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsFilled checks if matching has exhausted the order.
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}

// Crosses reports whether this incoming order may trade at the given
// resting price: a buy crosses at or below its limit, a sell at or above.
func (o *Order) Crosses(restingPrice decimal.Decimal) bool {
	if o.IsBid() {
		return o.Price.GreaterThanOrEqual(restingPrice)
	}
	return o.Price.LessThanOrEqual(restingPrice)
}
