package orderbookv1

import (
	"github.com/shopspring/decimal"

	snapshotv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/snapshot/v1"
)

// Book defines the order book interface consumed by the engine.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Book interface {
	// PlaceOrder submits a limit order, matching it against the opposite
	// side under price-time priority. Structural failures (bad side, bad
	// parameters, duplicate id) are returned as errors and mutate nothing;
	// an accepted placement always yields a result.
	PlaceOrder(id string, side string, price decimal.Decimal, quantity int64) (*PlaceResult, error)
	// CancelOrder cancels an active order. The outcome is a status, not an
	// error; only an empty id fails structurally.
	CancelOrder(id string) (CancelStatus, error)
	// Snapshot captures the book's full lifecycle state.
	Snapshot() *snapshotv1.BookSnapshot
	// Restore replaces the book's state with the snapshot's.
	Restore(snapshot *snapshotv1.BookSnapshot) error
}
