package snapshotv1

import "context"

// Store persists and retrieves book snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Store interface {
	// Store persists the snapshot.
	Store(ctx context.Context, snapshot *Snapshot) error
	// Load retrieves the latest snapshot, or nil if none exists yet.
	Load(ctx context.Context) (*Snapshot, error)
}
