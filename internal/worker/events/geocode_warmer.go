package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/worker"
)

const (
	errorBackoff    = time.Second
	emptyQueueSleep = 500 * time.Millisecond
)

// Locator resolves a query through the geocode cache.
type Locator interface {
	Locate(ctx context.Context, query string) (*domain.GeocodeResult, error)
}

// GeocodeWarmer reads union events and resolves each written union's
// zipcode, so radius searches around known unions start from a cache hit.
type GeocodeWarmer struct {
	*worker.BaseWorker
	consumer  repository.StreamConsumer
	locator   Locator
	batchSize int
}

func NewGeocodeWarmer(
	consumer repository.StreamConsumer,
	locator Locator,
	stream string,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *GeocodeWarmer {
	return &GeocodeWarmer{
		BaseWorker: worker.NewBaseWorker("geocode-warmer", worker.NewSubscription(stream, consumerGroup), logger),
		consumer:   consumer,
		locator:    locator,
		batchSize:  batchSize,
	}
}

func (w *GeocodeWarmer) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting geocode warmer", zap.Int("batch_size", w.batchSize))

	sub := w.Subscription()
	if err := w.consumer.CreateConsumerGroup(ctx, sub.Stream, sub.Group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.Done():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.sleep(ctx, errorBackoff)
			continue
		}
		if processed == 0 {
			w.sleep(ctx, emptyQueueSleep)
		}
	}
}

func (w *GeocodeWarmer) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-w.Done():
	case <-ctx.Done():
	}
}

// processBatch warms each distinct zipcode in the batch once and acks every
// message read. Warming is best effort; failed lookups are not retried.
func (w *GeocodeWarmer) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()
	sub := w.Subscription()

	messages, err := w.consumer.ConsumeBatch(ctx, sub.Stream, sub.Group, sub.Consumer, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(messages))
	seen := make(map[string]struct{})
	var zipcodes []string

	for _, msg := range messages {
		ids = append(ids, msg.ID)

		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Skipping malformed event",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		zip := zipcodeOf(event)
		if zip == "" {
			continue
		}
		if _, ok := seen[zip]; ok {
			continue
		}
		seen[zip] = struct{}{}
		zipcodes = append(zipcodes, zip)
	}

	warmed := 0
	for _, zip := range zipcodes {
		if _, err := w.locator.Locate(ctx, zip); err != nil {
			logger.Warn("Failed to warm geocode",
				zap.String("zipcode", zip),
				zap.Error(err))
			continue
		}
		warmed++
	}

	if err := w.consumer.AckMessages(ctx, sub.Stream, sub.Group, ids); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("zipcodes", len(zipcodes)),
		zap.Int("warmed", warmed))

	return len(messages), nil
}

func parseMessage(msg domain.StreamMessage) (*domain.UnionEvent, error) {
	data, ok := msg.Data["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.UnionEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

// zipcodeOf returns the zipcode worth warming for event, or "".
func zipcodeOf(event *domain.UnionEvent) string {
	if event.Type == domain.EventUnionDeleted {
		return ""
	}
	if event.Union == nil || event.Union.Location == nil {
		return ""
	}
	return event.Union.Location.Zipcode
}
