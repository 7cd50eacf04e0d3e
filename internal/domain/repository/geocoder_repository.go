package repository

import (
	"context"

	"github.com/union-tracker/internal/domain"
)

// GeocoderRepository resolves free-text addresses and postal codes.
type GeocoderRepository interface {
	// Geocode returns matches for query, best first. No match is an empty
	// slice, not an error.
	Geocode(ctx context.Context, query string) ([]domain.GeocodeResult, error)
}
