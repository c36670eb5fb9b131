package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/snapshot/v1"
	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
	"github.com/KolesnikovPavel/limit-order-book/pkg/logger"
	"github.com/KolesnikovPavel/limit-order-book/pkg/redis"
)

// Store persists book snapshots in Redis, keyed by instrument.
type Store struct {
	instrument  string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewStore creates a snapshot store backed by the given Redis client.
func NewStore(redisclient redis.Client, instrument string, log *logger.Logger) *Store {
	return &Store{
		instrument:  instrument,
		redisclient: redisclient,
		logger:      log,
	}
}

// Store serializes the snapshot and writes it to Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrument",
			Value: s.instrument,
		})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.instrument, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrument",
			Value: s.instrument,
		})
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.Field{Key: "instrument", Value: s.instrument},
		logger.Field{Key: "orderOffset", Value: snapshot.OrderOffset},
	)
	return nil
}

// Load reads the latest snapshot from Redis. It returns nil without error
// when no snapshot exists yet.
func (s *Store) Load(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.instrument)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrument",
			Value: s.instrument,
		})
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{
			Key:   "instrument",
			Value: s.instrument,
		})
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "instrument",
			Value: s.instrument,
		})
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
