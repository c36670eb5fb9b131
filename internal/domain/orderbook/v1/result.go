package orderbookv1

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StatusOK is the response for a placement that matched nothing and for a
// successful cancel.
const StatusOK = "OK"

// Fill records quantity taken from one resting order during matching.
type Fill struct {
	OrderID  string
	Quantity int64
	Price    decimal.Decimal
}

// String renders the fill descriptor, e.g. "BBB (6 @ 12)".
func (f Fill) String() string {
	return fmt.Sprintf("%s (%d @ %s)", f.OrderID, f.Quantity, f.Price)
}

// PlaceResult is the outcome of an accepted placement. Fills appear in the
// order the matches occurred.
type PlaceResult struct {
	OrderID   string
	Fills     []Fill
	Remaining int64
}

// FullyMatched reports whether the incoming order was exhausted.
func (r *PlaceResult) FullyMatched() bool {
	return r.Remaining == 0
}

// String renders the placement outcome in the book's response vocabulary:
// "OK" when nothing matched, otherwise "Fully matched with ..." or
// "Partially matched with ..." with fill descriptors joined by " and ".
func (r *PlaceResult) String() string {
	if len(r.Fills) == 0 {
		return StatusOK
	}

	items := make([]string, len(r.Fills))
	for i, fill := range r.Fills {
		items[i] = fill.String()
	}

	matchType := "Partially"
	if r.FullyMatched() {
		matchType = "Fully"
	}
	return fmt.Sprintf("%s matched with %s", matchType, strings.Join(items, " and "))
}

// CancelStatus values are business outcomes, not errors: a cancel against a
// missing or terminal order is an expected result, reported in-band.
type CancelStatus string

const (
	// CancelOK means the order was active and is now canceled.
	CancelOK CancelStatus = StatusOK
	// CancelAlreadyFilled means matching fully consumed the order before
	// the cancel arrived.
	CancelAlreadyFilled CancelStatus = "Failed - already fully filled"
	// CancelNoActiveOrder means the id is unknown or the order already left
	// the active state. The en dash is kept for compatibility with existing
	// consumers of the response text.
	CancelNoActiveOrder CancelStatus = "Failed – no such active order"
)
