package repository

import (
	"context"

	"github.com/union-tracker/internal/domain"
)

// UnionRepository is the record store for unions.
// Implementations return (nil, nil) from lookups by an id that does not exist.
type UnionRepository interface {
	// Find returns the unions matching opts, ordered and windowed.
	Find(ctx context.Context, opts domain.FindOptions) ([]*domain.Union, error)

	// Count returns the number of unions matching conditions; nil counts all.
	Count(ctx context.Context, conditions []domain.Condition) (int64, error)

	// GetByID returns the union with the given id.
	GetByID(ctx context.Context, id string) (*domain.Union, error)

	// Create stores u and sets u.ID.
	Create(ctx context.Context, u *domain.Union) error

	// Update applies patch and returns the updated union.
	Update(ctx context.Context, id string, patch domain.UnionPatch) (*domain.Union, error)

	// Delete removes the union and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// FindWithinRadius returns unions whose location lies within the
	// spherical cap of radiusRadians around center.
	FindWithinRadius(ctx context.Context, center domain.Coordinate, radiusRadians float64) ([]*domain.Union, error)

	// DeleteAll removes every union and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
