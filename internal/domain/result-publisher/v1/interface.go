package resultpublisherv1

import "context"

// ResultPublisher defines the interface for publishing request outcomes.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=resultpublisherv1_mock
type ResultPublisher interface {
	// PublishResult publishes a result event to the results topic.
	PublishResult(ctx context.Context, event *ResultEvent) error
}
