package resultpublisher

import (
	"context"

	"github.com/segmentio/kafka-go"

	resultpublisherv1 "github.com/KolesnikovPavel/limit-order-book/internal/domain/result-publisher/v1"
	"github.com/KolesnikovPavel/limit-order-book/pkg/config"
	"github.com/KolesnikovPavel/limit-order-book/pkg/errors"
	"github.com/KolesnikovPavel/limit-order-book/pkg/logger"
)

// Publisher publishes result events to the results topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a Kafka publisher for result events.
func NewPublisher(cfg config.ResultPublisherConfig, log logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishResult publishes a result event, keyed by order id so outcomes for
// one order land on one partition in order.
func (p *Publisher) PublishResult(ctx context.Context, event *resultpublisherv1.ResultEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: event.ToBytes(),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "orderID", Value: event.OrderID},
			logger.Field{Key: "status", Value: event.Status},
		)
		return errors.NewTracer("failed to publish result event").Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
