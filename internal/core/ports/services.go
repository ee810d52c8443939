package ports

import "context"

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes ingestion-side domain events to a message broker.
type EventPublisher interface {
	PublishBillUpdated(ctx context.Context, billID string) error
	PublishPersonUpdated(ctx context.Context, personID string) error
}

// EventSubscriber subscribes to ingestion-side domain events.
type EventSubscriber interface {
	SubscribeBillUpdates(ctx context.Context, handler func(ctx context.Context, billID string) error) error
	SubscribePersonUpdates(ctx context.Context, handler func(ctx context.Context, personID string) error) error
}

// Summarizer produces a plain-language summary of a bill. Implementations
// call an external service; the worker owns retry policy.
type Summarizer interface {
	Summarize(ctx context.Context, billID, title string) (string, error)
}
