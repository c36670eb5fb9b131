package engine

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	orderreaderv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/order-reader/v1"
	orderbookv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/orderbook/v1"
	resultpublisherv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/result-publisher/v1"
	snapshotv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/snapshot/v1"
	"github.com/KolesnikovPavel/limit-order-book/pkg/config"
	"github.com/KolesnikovPavel/limit-order-book/pkg/logger"
)

// Engine drives one order book from the order stream: it consumes requests
// in stream order, applies them to the book, publishes each outcome, and
// periodically snapshots book state so a restart resumes where it left off.
// The book itself serializes mutations; the engine is the single caller.
type Engine struct {
	book          orderbookv1.Book
	orderReader   orderreaderv1.OrderReader
	snapshotStore snapshotv1.Store
	publisher     resultpublisherv1.ResultPublisher
	logger        *logger.Logger
	config        *config.Config

	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	snapshotInterval    time.Duration
	snapshotOffsetDelta int64
}

// NewEngine creates an engine with default options and restores the book
// from the latest snapshot, if any.
func NewEngine(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	publisher resultpublisherv1.ResultPublisher,
	log *logger.Logger,
	cfg *config.Config,
) (*Engine, error) {
	return NewEngineWithOptions(book, orderReader, snapshotStore, publisher, log, cfg, DefaultOptions())
}

// NewEngineWithOptions creates an engine with custom options.
func NewEngineWithOptions(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	publisher resultpublisherv1.ResultPublisher,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) (*Engine, error) {
	e := &Engine{
		book:          book,
		orderReader:   orderReader,
		snapshotStore: snapshotStore,
		publisher:     publisher,
		logger:        log,
		config:        cfg,

		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		orderOffset:         -1,
	}

	if err := e.loadSnapshot(context.Background()); err != nil {
		return nil, err
	}

	return e, nil
}

// Start launches the processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runSnapshotManager()

	e.logger.Info("Engine started", logger.Field{
		Key:   "instrument",
		Value: e.config.Instrument,
	})

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runOrderProcessor reads and applies order requests in a single goroutine,
// preserving stream order.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting order processor", logger.Field{
		Key:   "instrument",
		Value: e.config.Instrument,
	})

	// Resume right after the last applied request.
	currentOffset := e.getOrderOffset()
	if currentOffset > 0 {
		currentOffset++
	}

	if err := e.orderReader.SetOffset(currentOffset); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "set_order_reader_offset",
		})
		return
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			e.orderReader.Close()
			return
		default:
			msg, request, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_order_message",
				})
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "commit_order_message",
				})
			}

			e.processRequest(&request)
			e.setOrderOffset(msg.Offset)
		}
	}
}

// processRequest applies one request to the book and publishes its outcome.
// Structural failures reject the request without touching the book; the
// stream keeps flowing either way.
func (e *Engine) processRequest(request *orderreaderv1.OrderRequest) {
	switch request.Type {
	case orderreaderv1.RequestTypePlace:
		result, err := e.book.PlaceOrder(
			request.OrderID,
			request.Side,
			decimal.NewFromFloat(request.Price),
			request.Quantity,
		)
		if err != nil {
			e.logger.Warn("Order rejected",
				logger.Field{Key: "orderID", Value: request.OrderID},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			e.publish(resultpublisherv1.CreateRejection(
				e.config.Instrument, request.OrderID, request.Type, err, request.Offset,
			))
			return
		}

		e.logger.Debug("Order placed",
			logger.Field{Key: "orderID", Value: request.OrderID},
			logger.Field{Key: "status", Value: result.String()},
			logger.Field{Key: "fills", Value: len(result.Fills)},
		)
		e.publish(resultpublisherv1.CreateFromPlacement(e.config.Instrument, result, request.Offset))

	case orderreaderv1.RequestTypeCancel:
		status, err := e.book.CancelOrder(request.OrderID)
		if err != nil {
			e.logger.Warn("Cancel rejected",
				logger.Field{Key: "orderID", Value: request.OrderID},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			e.publish(resultpublisherv1.CreateRejection(
				e.config.Instrument, request.OrderID, request.Type, err, request.Offset,
			))
			return
		}

		e.publish(resultpublisherv1.CreateFromCancel(
			e.config.Instrument, request.OrderID, status, request.Offset,
		))

	default:
		e.logger.Warn("Unknown request type",
			logger.Field{Key: "orderID", Value: request.OrderID},
			logger.Field{Key: "type", Value: string(request.Type)},
		)
	}
}

func (e *Engine) publish(event *resultpublisherv1.ResultEvent) {
	if err := e.publisher.PublishResult(e.ctx, event); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "publish_result",
		})
	}
}

// runSnapshotManager handles periodic snapshots.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot()
			}
		}
	}
}

func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset <= 0 {
		return false
	}

	return currentOffset-lastSnapshotOffset >= e.snapshotOffsetDelta
}

func (e *Engine) createAndStoreSnapshot() {
	currentOffset := e.getOrderOffset()

	snapshot := &snapshotv1.Snapshot{
		OrderOffset: currentOffset,
		Book:        *e.book.Snapshot(),
	}

	if err := e.snapshotStore.Store(e.ctx, snapshot); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "store_snapshot",
		})
		return
	}

	e.setLastSnapshotOffset(currentOffset)
	e.logger.Info("Snapshot stored",
		logger.Field{Key: "instrument", Value: e.config.Instrument},
		logger.Field{Key: "offset", Value: currentOffset},
	)
}

// loadSnapshot restores the book from the latest stored snapshot.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.Load(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	if err := e.book.Restore(&snapshot.Book); err != nil {
		return err
	}

	e.mu.Lock()
	e.orderOffset = snapshot.OrderOffset
	e.lastSnapshotOffset = snapshot.OrderOffset
	e.mu.Unlock()

	e.logger.Info("Book restored from snapshot", logger.Field{
		Key:   "orderOffset",
		Value: snapshot.OrderOffset,
	})

	return nil
}

func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// GetOrderOffset returns the offset of the last applied request.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the offset captured by the last stored snapshot.
func (e *Engine) GetLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}
