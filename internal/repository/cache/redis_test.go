package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
)

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestRedis_StreamLength(t *testing.T) {
	r, err := NewRedis(&config.RedisConfig{Host: "localhost", Port: 6379, DB: 1}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	require.NoError(t, r.Health(ctx))

	stream := "test:stream:union:events:" + uuid.NewString()
	defer r.Client().Del(ctx, stream)

	n, err := r.StreamLength(ctx, stream)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Client().XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{"type": "union.created", "data": "{}"},
		}).Err())
	}

	n, err = r.StreamLength(ctx, stream)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
