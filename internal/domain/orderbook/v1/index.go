package orderbookv1

import (
	"container/heap"

	"github.com/shopspring/decimal"
)

// IndexEntry is ordering metadata referencing one resting order. The
// registry owns the order itself; an entry can outlive the order's active
// state, at which point it is a tombstone.
type IndexEntry struct {
	OrderID  string
	Price    decimal.Decimal
	Sequence uint64
}

// PriceIndex is a priority queue of resting-order references for one side
// of the book. Bids rank highest price first, asks lowest price first;
// equal prices rank by submission sequence, earliest first.
//
// The index uses lazy deletion: cancels and fills never touch the heap, so
// entries for orders that already left the active state stay behind until a
// caller peeks or pops them. Callers must check registry membership before
// treating an entry as a live candidate, and pop tombstones on discovery.
type PriceIndex struct {
	entries entryHeap
}

// NewBidIndex creates an index ranking highest price first.
func NewBidIndex() *PriceIndex {
	return &PriceIndex{entries: entryHeap{highestFirst: true}}
}

// NewAskIndex creates an index ranking lowest price first.
func NewAskIndex() *PriceIndex {
	return &PriceIndex{entries: entryHeap{}}
}

// Push indexes a resting order. O(log n).
func (x *PriceIndex) Push(order *Order) {
	heap.Push(&x.entries, IndexEntry{
		OrderID:  order.ID,
		Price:    order.Price,
		Sequence: order.Sequence,
	})
}

// Peek returns the highest-priority entry without removing it.
func (x *PriceIndex) Peek() (IndexEntry, bool) {
	if len(x.entries.items) == 0 {
		return IndexEntry{}, false
	}
	return x.entries.items[0], true
}

// Pop removes and returns the highest-priority entry. O(log n).
func (x *PriceIndex) Pop() (IndexEntry, bool) {
	if len(x.entries.items) == 0 {
		return IndexEntry{}, false
	}
	return heap.Pop(&x.entries).(IndexEntry), true
}

// Len returns the number of entries, tombstones included.
func (x *PriceIndex) Len() int {
	return len(x.entries.items)
}

// entryHeap implements heap.Interface over index entries.
type entryHeap struct {
	items        []IndexEntry
	highestFirst bool
}

func (h *entryHeap) Len() int { return len(h.items) }

func (h *entryHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if cmp := a.Price.Cmp(b.Price); cmp != 0 {
		if h.highestFirst {
			return cmp > 0
		}
		return cmp < 0
	}
	return a.Sequence < b.Sequence
}

func (h *entryHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *entryHeap) Push(x any) {
	h.items = append(h.items, x.(IndexEntry))
}

func (h *entryHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
