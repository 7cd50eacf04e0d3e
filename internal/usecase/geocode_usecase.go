package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/pkg/errors"
)

// GeocodeUseCase resolves addresses and postal codes, caching the best match.
type GeocodeUseCase struct {
	geocoder  repository.GeocoderRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewGeocodeUseCase creates a GeocodeUseCase. cacheRepo may be nil, in
// which case every lookup goes to the geocoder.
func NewGeocodeUseCase(
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Locate returns the best match for query.
func (uc *GeocodeUseCase) Locate(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.ErrValidation.WithMessage("Please add an address")
	}

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetGeocode(ctx, query)
		if err == nil && cached != nil {
			uc.logger.Debug("Geocode fetched from cache", zap.String("query", query))
			return cached, nil
		}
		if err != nil {
			uc.logger.Warn("Failed to get geocode from cache", zap.Error(err))
		}
	}

	results, err := uc.geocoder.Geocode(ctx, query)
	if err != nil {
		uc.logger.Error("Geocoder failed", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrGeocoderUnavailable.Wrap(err)
	}
	if len(results) == 0 {
		return nil, errors.ErrLocationNotFound.WithMessage("No location found for %s", query)
	}

	best := results[0]
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetGeocode(ctx, query, &best, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache geocode", zap.Error(err))
		}
	}

	return &best, nil
}
