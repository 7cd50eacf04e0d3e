package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/usecase/dto"
)

// SeedUseCase bulk loads unions from a JSON array of create requests.
type SeedUseCase struct {
	unions *UnionUseCase
	logger *zap.Logger
}

func NewSeedUseCase(unions *UnionUseCase, logger *zap.Logger) *SeedUseCase {
	return &SeedUseCase{
		unions: unions,
		logger: logger,
	}
}

// Import creates each record in order through the normal create path, so
// slugs and locations are derived as for API writes. It stops at the first
// failure and returns how many records were stored before it.
func (uc *SeedUseCase) Import(ctx context.Context, r io.Reader) (int, error) {
	var reqs []dto.CreateUnionRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return 0, fmt.Errorf("failed to decode seed data: %w", err)
	}

	for i := range reqs {
		u, err := uc.unions.Create(ctx, &reqs[i])
		if err != nil {
			return i, fmt.Errorf("record %d (%s): %w", i, reqs[i].CompanyName, err)
		}
		uc.logger.Debug("Seeded union", zap.Int("index", i), zap.String("id", u.ID))
	}

	uc.logger.Info("Seed data imported", zap.Int("count", len(reqs)))
	return len(reqs), nil
}

// Destroy removes every union.
func (uc *SeedUseCase) Destroy(ctx context.Context) (int64, error) {
	n, err := uc.unions.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("Seed data destroyed", zap.Int64("count", n))
	return n, nil
}
