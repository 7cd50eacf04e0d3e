package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	redisRepo "github.com/union-tracker/internal/repository/redis"
)

const testStream = "test:stream:union:events"

// getTestRedisClient connects to a local Redis or skips the test.
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testStream)
		client.Close()
	})
	return client
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	union := &domain.Union{ID: "5d725a1b7b292f5f8ceff788", CompanyName: "Acme Co"}
	event := domain.NewUnionEvent(domain.EventUnionCreated, union.ID, union)

	require.NoError(t, repo.PublishToStream(ctx, testStream, event))

	msgs, err := client.XRange(ctx, testStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	data, ok := msgs[0].Values[redisRepo.DataField].(string)
	require.True(t, ok)

	var got domain.UnionEvent
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, domain.EventUnionCreated, got.Type)
	assert.Equal(t, "Acme Co", got.Union.CompanyName)
}

func TestStreamRepository_PublishToStream_MarshalError(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())

	err := repo.PublishToStream(context.Background(), testStream, make(chan int))
	assert.Error(t, err)
}

func TestStreamConsumer_ConsumeAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	logger := zap.NewNop()
	publisher := redisRepo.NewStreamRepository(client, logger)
	consumer := redisRepo.NewStreamConsumer(client, logger)
	ctx := context.Background()
	const group = "test-group"

	require.NoError(t, consumer.CreateConsumerGroup(ctx, testStream, group))
	// Creating the same group again is not an error.
	require.NoError(t, consumer.CreateConsumerGroup(ctx, testStream, group))

	msgs, err := consumer.ConsumeBatch(ctx, testStream, group, "c1", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	for _, id := range []string{"a", "b", "c"} {
		event := domain.NewUnionEvent(domain.EventUnionDeleted, id, nil)
		require.NoError(t, publisher.PublishToStream(ctx, testStream, event))
	}

	msgs, err = consumer.ConsumeBatch(ctx, testStream, group, "c1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Data, redisRepo.DataField)

	ids := []string{msgs[0].ID, msgs[1].ID}
	require.NoError(t, consumer.AckMessages(ctx, testStream, group, ids))
	require.NoError(t, consumer.AckMessages(ctx, testStream, group, nil))

	msgs, err = consumer.ConsumeBatch(ctx, testStream, group, "c1", 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	pending, err := client.XPending(ctx, testStream, group).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}
