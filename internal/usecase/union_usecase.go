package usecase

import (
	"context"
	stderrors "errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/pkg/errors"
	"github.com/union-tracker/internal/pkg/utils"
	"github.com/union-tracker/internal/pkg/validator"
	"github.com/union-tracker/internal/usecase/dto"
)

// UnionOptions tunes list and event behaviour.
type UnionOptions struct {
	DefaultLimit int
	// CountScope selects what the pagination total counts: the records
	// matching the filter, or the whole collection.
	CountScope string
	// EventsStream is the Redis stream for lifecycle events. Empty disables
	// publishing.
	EventsStream string
}

// UnionUseCase implements the union resource operations.
type UnionUseCase struct {
	unionRepo  repository.UnionRepository
	geocodeUC  *GeocodeUseCase
	streamRepo repository.StreamRepository
	builder    *QueryBuilder
	logger     *zap.Logger
	opts       UnionOptions
	now        func() time.Time
}

// NewUnionUseCase creates a UnionUseCase. streamRepo may be nil.
func NewUnionUseCase(
	unionRepo repository.UnionRepository,
	geocodeUC *GeocodeUseCase,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	opts UnionOptions,
) *UnionUseCase {
	if opts.CountScope == "" {
		opts.CountScope = domain.CountScopeFiltered
	}
	return &UnionUseCase{
		unionRepo:  unionRepo,
		geocodeUC:  geocodeUC,
		streamRepo: streamRepo,
		builder:    NewQueryBuilder(opts.DefaultLimit),
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// List runs a filtered, sorted and optionally paginated query.
func (uc *UnionUseCase) List(ctx context.Context, params url.Values) (*dto.ListResponse, error) {
	q, err := uc.builder.Build(params)
	if err != nil {
		return nil, err
	}

	findOpts := domain.FindOptions{
		Conditions: q.Conditions,
		Select:     q.Select,
		Sort:       q.Sort,
	}

	var pagination *domain.Pagination
	if q.Page != nil {
		var countConditions []domain.Condition
		if uc.opts.CountScope == domain.CountScopeFiltered {
			countConditions = q.Conditions
		}
		total, err := uc.unionRepo.Count(ctx, countConditions)
		if err != nil {
			return nil, errors.ErrDatabaseError.Wrap(err)
		}

		findOpts.Skip = q.Page.StartIndex()
		findOpts.Limit = int64(q.Page.Limit)
		pagination = domain.NewPagination(*q.Page, total)
	}

	unions, err := uc.unionRepo.Find(ctx, findOpts)
	if err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	data := make([]interface{}, 0, len(unions))
	for _, u := range unions {
		if len(q.Select) == 0 {
			data = append(data, u)
			continue
		}
		doc, err := project(u, q.Select)
		if err != nil {
			return nil, errors.ErrInternalServer.Wrap(err)
		}
		data = append(data, doc)
	}

	return &dto.ListResponse{
		Count:      len(data),
		Pagination: pagination,
		Data:       data,
	}, nil
}

// GetByID returns one union.
func (uc *UnionUseCase) GetByID(ctx context.Context, id string) (*domain.Union, error) {
	u, err := uc.unionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	if u == nil {
		return nil, unionNotFound(id)
	}
	return u, nil
}

// Create validates req, derives the slug and location, and stores the union.
func (uc *UnionUseCase) Create(ctx context.Context, req *dto.CreateUnionRequest) (*domain.Union, error) {
	req.Normalize()
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	u := req.ToUnion()
	u.Slug = utils.GenerateSlug(u.CompanyName)

	loc, err := uc.locateAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	u.Location = loc
	u.CreatedAt = uc.now().UTC()

	if err := uc.unionRepo.Create(ctx, u); err != nil {
		return nil, storeError(err)
	}

	uc.logger.Info("Union created",
		zap.String("id", u.ID),
		zap.String("slug", u.Slug))
	uc.publish(ctx, domain.NewUnionEvent(domain.EventUnionCreated, u.ID, u))

	return u, nil
}

// Update applies a partial update. A new companyName re-derives the slug
// and a new address re-derives the location.
func (uc *UnionUseCase) Update(ctx context.Context, id string, req *dto.UpdateUnionRequest) (*domain.Union, error) {
	req.Normalize()
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.CompanyName != nil {
		slug := utils.GenerateSlug(*patch.CompanyName)
		patch.Slug = &slug
	}

	if patch.IsEmpty() && req.Address == nil {
		return uc.GetByID(ctx, id)
	}

	if req.Address != nil {
		// Skip the geocoder call for an id that does not exist.
		if _, err := uc.GetByID(ctx, id); err != nil {
			return nil, err
		}
		loc, err := uc.locateAddress(ctx, *req.Address)
		if err != nil {
			return nil, err
		}
		patch.Location = loc
	}

	u, err := uc.unionRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err)
	}
	if u == nil {
		return nil, unionNotFound(id)
	}

	uc.logger.Info("Union updated", zap.String("id", id))
	uc.publish(ctx, domain.NewUnionEvent(domain.EventUnionUpdated, id, u))

	return u, nil
}

// Delete removes a union.
func (uc *UnionUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.unionRepo.Delete(ctx, id)
	if err != nil {
		return errors.ErrDatabaseError.Wrap(err)
	}
	if !deleted {
		return unionNotFound(id)
	}

	uc.logger.Info("Union deleted", zap.String("id", id))
	uc.publish(ctx, domain.NewUnionEvent(domain.EventUnionDeleted, id, nil))

	return nil
}

// SearchByRadius returns unions within distance of the zipcode's location.
// unit is "mi" (default) or "km".
func (uc *UnionUseCase) SearchByRadius(ctx context.Context, zipcode, distance, unit string) (*dto.ListResponse, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(distance), 64)
	if err != nil || d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, errors.ErrInvalidDistance
	}

	earthRadius, ok := utils.EarthRadius(unit)
	if !ok {
		return nil, errors.ErrValidation.WithMessage("Unit must be mi or km")
	}

	loc, err := uc.geocodeUC.Locate(ctx, zipcode)
	if err != nil {
		return nil, err
	}

	center := domain.Coordinate{Lat: loc.Latitude, Lon: loc.Longitude}
	radius := utils.AngularRadius(d, earthRadius)

	unions, err := uc.unionRepo.FindWithinRadius(ctx, center, radius)
	if err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	uc.logger.Debug("Radius search",
		zap.String("zipcode", zipcode),
		zap.Float64("distance", d),
		zap.Float64("radius_rad", radius),
		zap.Int("results", len(unions)))

	data := make([]interface{}, len(unions))
	for i, u := range unions {
		data[i] = u
	}
	return &dto.ListResponse{Count: len(data), Data: data}, nil
}

// DeleteAll removes every union. Used by the seeder.
func (uc *UnionUseCase) DeleteAll(ctx context.Context) (int64, error) {
	n, err := uc.unionRepo.DeleteAll(ctx)
	if err != nil {
		return 0, errors.ErrDatabaseError.Wrap(err)
	}
	return n, nil
}

func (uc *UnionUseCase) locateAddress(ctx context.Context, address string) (*domain.Location, error) {
	g, err := uc.geocodeUC.Locate(ctx, address)
	if errors.IsKind(err, errors.KindNotFound) {
		return nil, errors.ErrValidation.WithMessage("Could not geocode address %q", address)
	}
	if err != nil {
		return nil, err
	}
	return domain.NewLocation(*g), nil
}

func (uc *UnionUseCase) publish(ctx context.Context, event domain.UnionEvent) {
	if uc.streamRepo == nil || uc.opts.EventsStream == "" {
		return
	}
	if err := uc.streamRepo.PublishToStream(ctx, uc.opts.EventsStream, event); err != nil {
		uc.logger.Warn("Failed to publish union event",
			zap.String("type", string(event.Type)),
			zap.String("union_id", event.UnionID),
			zap.Error(err))
	}
}

func unionNotFound(id string) error {
	return errors.ErrUnionNotFound.WithMessage("Union not found  with id of %s", id)
}

func storeError(err error) error {
	if stderrors.Is(err, repository.ErrDuplicateKey) {
		return errors.ErrDuplicateField
	}
	return errors.ErrDatabaseError.Wrap(err)
}
