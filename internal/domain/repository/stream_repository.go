package repository

import (
	"context"

	"github.com/union-tracker/internal/domain"
)

// StreamRepository appends messages to Redis streams.
type StreamRepository interface {
	// PublishToStream appends data, JSON encoded, to stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

// StreamConsumer reads a stream through a consumer group.
type StreamConsumer interface {
	// CreateConsumerGroup creates group on stream, creating the stream if
	// needed. An existing group is not an error.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to maxCount undelivered messages without blocking.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	// AckMessages marks messages as processed.
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error
}
