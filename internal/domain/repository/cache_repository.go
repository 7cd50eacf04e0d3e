package repository

import (
	"context"
	"time"

	"github.com/union-tracker/internal/domain"
)

// CacheRepository is a byte cache with typed helpers for geocoding results.
type CacheRepository interface {
	// Get returns the cached bytes or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete drops key.
	Delete(ctx context.Context, key string) error

	// GetGeocode returns a cached geocoding result, nil on a miss.
	GetGeocode(ctx context.Context, query string) (*domain.GeocodeResult, error)

	// SetGeocode caches a geocoding result for query.
	SetGeocode(ctx context.Context, query string, result *domain.GeocodeResult, ttl time.Duration) error
}
