package orderbook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	orderbookv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/orderbook/v1"
	snapshotv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/snapshot/v1"
	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
)

// Book is a single-instrument limit order book. Incoming orders match
// against the opposite side under price-time priority: best price first,
// earliest sequence among equal prices. Placements and cancels are
// serialized by one mutex, so a match is never partially visible.
type Book struct {
	mu       sync.Mutex
	registry *orderbookv1.Registry
	bids     *orderbookv1.PriceIndex
	asks     *orderbookv1.PriceIndex

	// sequence is owned by this book instance and increments once per
	// accepted order, giving FIFO tie-breaking independent of price.
	sequence uint64
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		registry: orderbookv1.NewRegistry(),
		bids:     orderbookv1.NewBidIndex(),
		asks:     orderbookv1.NewAskIndex(),
	}
}

// PlaceOrder validates and submits a limit order. Validation and the
// duplicate-id check happen before any mutation, so a structural failure
// leaves the book untouched.
func (b *Book) PlaceOrder(id string, side string, price decimal.Decimal, quantity int64) (*orderbookv1.PlaceResult, error) {
	order, err := orderbookv1.NewOrder(id, side, price, quantity)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.registry.Contains(order.ID) {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("order id %s already used", order.ID),
			string(errors.DuplicateOrderID),
			"orderID",
		)
	}

	b.sequence++
	order.Sequence = b.sequence

	own, opposite := b.bids, b.asks
	if !order.IsBid() {
		own, opposite = b.asks, b.bids
	}

	result := &orderbookv1.PlaceResult{OrderID: order.ID}
	for order.Quantity > 0 {
		best, ok := opposite.Peek()
		if !ok {
			break
		}

		// Tombstone left behind by a cancel or an earlier fill.
		resting, active := b.registry.Active(best.OrderID)
		if !active {
			opposite.Pop()
			continue
		}

		// Heap order guarantees no deeper entry crosses either.
		if !order.Crosses(best.Price) {
			break
		}

		opposite.Pop()

		matched := min(order.Quantity, resting.Quantity)
		order.Quantity -= matched
		resting.Quantity -= matched
		result.Fills = append(result.Fills, orderbookv1.Fill{
			OrderID:  resting.ID,
			Quantity: matched,
			Price:    resting.Price,
		})

		if resting.IsFilled() {
			b.registry.MoveToFilled(resting.ID)
		} else {
			// Price and sequence are unchanged, so the re-inserted entry
			// keeps its priority.
			opposite.Push(resting)
		}
	}

	result.Remaining = order.Quantity
	if order.Quantity > 0 {
		b.registry.InsertActive(order)
		own.Push(order)
	} else {
		// Fully consumed on arrival, never indexed.
		b.registry.InsertFilled(order)
	}

	return result, nil
}

// CancelOrder cancels an active order. The index entry stays behind as a
// tombstone; matching discards it on discovery.
func (b *Book) CancelOrder(id string) (orderbookv1.CancelStatus, error) {
	if id == "" {
		return "", errors.NewErrorDetails("order id cannot be empty", string(errors.InvalidParameters), "orderID")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.registry.IsFilled(id) {
		return orderbookv1.CancelAlreadyFilled, nil
	}
	if !b.registry.IsActive(id) {
		return orderbookv1.CancelNoActiveOrder, nil
	}

	b.registry.MoveToCanceled(id)
	return orderbookv1.CancelOK, nil
}

// ActiveCount returns the number of active orders.
func (b *Book) ActiveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.ActiveCount()
}

// Snapshot captures the book's full lifecycle state, ordered by sequence
// for determinism.
func (b *Book) Snapshot() *snapshotv1.BookSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &snapshotv1.BookSnapshot{
		Sequence: b.sequence,
		Active:   toBookOrders(b.registry.ActiveOrders()),
		Filled:   toBookOrders(b.registry.FilledOrders()),
		Canceled: toBookOrders(b.registry.CanceledOrders()),
	}
}

// Restore replaces the book's state with the snapshot's: active orders are
// re-registered and re-indexed, terminal orders keep their ids retired.
func (b *Book) Restore(snapshot *snapshotv1.BookSnapshot) error {
	if snapshot == nil {
		return errors.NewErrorDetails("snapshot cannot be nil", string(errors.GeneralBadRequestError), "snapshot")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	registry := orderbookv1.NewRegistry()
	bids := orderbookv1.NewBidIndex()
	asks := orderbookv1.NewAskIndex()

	for _, bookOrder := range snapshot.Active {
		order, err := fromBookOrder(bookOrder)
		if err != nil {
			return err
		}
		registry.InsertActive(order)
		if order.IsBid() {
			bids.Push(order)
		} else {
			asks.Push(order)
		}
	}
	for _, bookOrder := range snapshot.Filled {
		order, err := fromBookOrder(bookOrder)
		if err != nil {
			return err
		}
		registry.InsertFilled(order)
	}
	for _, bookOrder := range snapshot.Canceled {
		order, err := fromBookOrder(bookOrder)
		if err != nil {
			return err
		}
		registry.InsertCanceled(order)
	}

	b.registry = registry
	b.bids = bids
	b.asks = asks
	b.sequence = snapshot.Sequence

	return nil
}

func toBookOrders(orders []*orderbookv1.Order) []snapshotv1.BookOrder {
	result := make([]snapshotv1.BookOrder, 0, len(orders))
	for _, order := range orders {
		result = append(result, snapshotv1.BookOrder{
			OrderID:  order.ID,
			Side:     string(order.Side),
			Price:    order.Price,
			Quantity: order.Quantity,
			Sequence: order.Sequence,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence < result[j].Sequence
	})
	return result
}

func fromBookOrder(bookOrder snapshotv1.BookOrder) (*orderbookv1.Order, error) {
	side, err := orderbookv1.ParseSide(bookOrder.Side)
	if err != nil {
		return nil, err
	}
	return &orderbookv1.Order{
		ID:       bookOrder.OrderID,
		Side:     side,
		Price:    bookOrder.Price,
		Quantity: bookOrder.Quantity,
		Sequence: bookOrder.Sequence,
	}, nil
}
