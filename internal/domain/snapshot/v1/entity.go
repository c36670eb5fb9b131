package snapshotv1

import "github.com/shopspring/decimal"

// Snapshot ties a book snapshot to the last order stream offset applied to it.
type Snapshot struct {
	OrderOffset int64        `json:"orderOffset"`
	Book        BookSnapshot `json:"book"`
}

// BookSnapshot captures the full lifecycle state of one book: every order in
// every state plus the sequence counter, so a restored book keeps rejecting
// retired ids and keeps assigning unique sequence numbers.
type BookSnapshot struct {
	Sequence uint64      `json:"sequence"`
	Active   []BookOrder `json:"active"`
	Filled   []BookOrder `json:"filled"`
	Canceled []BookOrder `json:"canceled"`
}

// BookOrder is one persisted order record.
type BookOrder struct {
	OrderID  string          `json:"orderID"`
	Side     string          `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Sequence uint64          `json:"sequence"`
}
