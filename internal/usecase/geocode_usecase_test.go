package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/usecase"
)

func TestGeocodeUseCase_Locate(t *testing.T) {
	ctx := context.Background()
	ttl := 24 * time.Hour

	t.Run("cache hit skips geocoder", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewGeocodeUseCase(geocoder, cache, zap.NewNop(), ttl)

		cache.On("GetGeocode", ctx, "02201").Return(&bostonResult, nil).Once()

		got, err := uc.Locate(ctx, " 02201 ")
		require.NoError(t, err)
		assert.Equal(t, &bostonResult, got)
		geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss stores best match", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewGeocodeUseCase(geocoder, cache, zap.NewNop(), ttl)

		second := domain.GeocodeResult{Latitude: 1, Longitude: 2}
		cache.On("GetGeocode", ctx, "02201").Return(nil, nil).Once()
		geocoder.On("Geocode", ctx, "02201").Return([]domain.GeocodeResult{bostonResult, second}, nil).Once()
		cache.On("SetGeocode", ctx, "02201", &bostonResult, ttl).Return(nil).Once()

		got, err := uc.Locate(ctx, "02201")
		require.NoError(t, err)
		assert.Equal(t, bostonResult, *got)
		geocoder.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewGeocodeUseCase(geocoder, cache, zap.NewNop(), ttl)

		cache.On("GetGeocode", ctx, "02201").Return(nil, errors.New("redis down"))
		geocoder.On("Geocode", ctx, "02201").Return([]domain.GeocodeResult{bostonResult}, nil)
		cache.On("SetGeocode", ctx, "02201", mock.Anything, ttl).Return(errors.New("redis down"))

		got, err := uc.Locate(ctx, "02201")
		require.NoError(t, err)
		assert.Equal(t, "Boston", got.City)
	})

	t.Run("no match", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geocoder, nil, zap.NewNop(), ttl)
		geocoder.On("Geocode", ctx, "00000").Return([]domain.GeocodeResult{}, nil)

		_, err := uc.Locate(ctx, "00000")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
		assert.Equal(t, "No location found for 00000", messageOf(t, err))
	})

	t.Run("geocoder failure", func(t *testing.T) {
		geocoder := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geocoder, nil, zap.NewNop(), ttl)
		geocoder.On("Geocode", ctx, "02201").Return(nil, errors.New("timeout"))

		_, err := uc.Locate(ctx, "02201")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
	})

	t.Run("empty query", func(t *testing.T) {
		uc := usecase.NewGeocodeUseCase(&MockGeocoderRepository{}, nil, zap.NewNop(), ttl)
		_, err := uc.Locate(ctx, "   ")
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})
}
