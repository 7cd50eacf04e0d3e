package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
)

const (
	connectTimeout = 5 * time.Second

	// clientName shows up in CLIENT LIST next to the union-tracker consumers.
	clientName = "union-tracker"
)

// Redis is the connection behind the geocode cache and the union events
// stream. The API treats it as optional; the worker cannot run without it.
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis dials cfg and fails unless the server answers PING.
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  clientName,
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}

	logger = logger.With(zap.String("redis", addr), zap.Int("redis_db", cfg.DB))
	logger.Info("Redis connected for geocode cache and union events")

	return &Redis{client: client, addr: addr, logger: logger}, nil
}

// StreamLength is the number of union events retained in stream. A stream
// nobody has written to yet has length zero.
func (r *Redis) StreamLength(ctx context.Context, stream string) (int64, error) {
	n, err := r.client.XLen(ctx, stream).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("length of %s: %w", stream, err)
	}
	return n, nil
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}
