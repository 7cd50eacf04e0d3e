// Package memory is an in-process union store. Locations are indexed in an
// R-tree so radius searches only scan candidates inside the bounding box.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dhconnelly/rtreego"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/pkg/utils"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
	// pointTolerance is the half-width of the rectangle indexing a point.
	pointTolerance = 1e-9
)

// locationItem indexes one union location as (lat, lon).
type locationItem struct {
	id   string
	rect *rtreego.Rect
}

func (i *locationItem) Bounds() *rtreego.Rect {
	return i.rect
}

type record struct {
	union *domain.Union
	seq   uint64
	item  *locationItem
}

type unionRepository struct {
	mu        sync.RWMutex
	records   map[string]*record
	companies map[string]string // companyName -> id
	tree      *rtreego.Rtree
	nextSeq   uint64
	now       func() time.Time
	logger    *zap.Logger
}

// NewUnionRepository creates an empty in-memory store.
func NewUnionRepository(logger *zap.Logger) repository.UnionRepository {
	return &unionRepository{
		records:   make(map[string]*record),
		companies: make(map[string]string),
		tree:      rtreego.NewTree(dimensions, minChildren, maxChildren),
		now:       time.Now,
		logger:    logger,
	}
}

func (r *unionRepository) Find(ctx context.Context, opts domain.FindOptions) ([]*domain.Union, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]*record, 0, len(r.records))
	for _, rec := range r.records {
		if matches(rec.union, opts.Conditions) {
			found = append(found, rec)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if l, decided := less(found[i].union, found[j].union, opts.Sort); decided {
			return l
		}
		return found[i].seq < found[j].seq
	})

	found = window(found, opts.Skip, opts.Limit)

	unions := make([]*domain.Union, len(found))
	for i, rec := range found {
		unions[i] = rec.union.Clone()
	}
	return unions, nil
}

func window(recs []*record, skip, limit int64) []*record {
	if skip >= int64(len(recs)) {
		return nil
	}
	if skip > 0 {
		recs = recs[skip:]
	}
	if limit > 0 && limit < int64(len(recs)) {
		recs = recs[:limit]
	}
	return recs
}

func (r *unionRepository) Count(ctx context.Context, conditions []domain.Condition) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(conditions) == 0 {
		return int64(len(r.records)), nil
	}

	var n int64
	for _, rec := range r.records {
		if matches(rec.union, conditions) {
			n++
		}
	}
	return n, nil
}

func (r *unionRepository) GetByID(ctx context.Context, id string) (*domain.Union, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return rec.union.Clone(), nil
}

func (r *unionRepository) Create(ctx context.Context, u *domain.Union) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.companies[u.CompanyName]; taken {
		return repository.ErrDuplicateKey
	}

	stored := u.Clone()
	stored.ID = primitive.NewObjectID().Hex()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}

	r.nextSeq++
	rec := &record{union: stored, seq: r.nextSeq}
	r.records[stored.ID] = rec
	r.companies[stored.CompanyName] = stored.ID
	r.index(rec)

	u.ID = stored.ID
	u.CreatedAt = stored.CreatedAt

	r.logger.Debug("Union stored", zap.String("id", stored.ID))
	return nil
}

func (r *unionRepository) Update(ctx context.Context, id string, patch domain.UnionPatch) (*domain.Union, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}

	if patch.CompanyName != nil {
		if owner, taken := r.companies[*patch.CompanyName]; taken && owner != id {
			return nil, repository.ErrDuplicateKey
		}
	}

	updated := rec.union.Clone()
	patch.Apply(updated)

	delete(r.companies, rec.union.CompanyName)
	r.companies[updated.CompanyName] = id

	if patch.Location != nil {
		r.unindex(rec)
	}
	rec.union = updated
	if patch.Location != nil {
		r.index(rec)
	}

	return updated.Clone(), nil
}

func (r *unionRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return false, nil
	}

	r.unindex(rec)
	delete(r.companies, rec.union.CompanyName)
	delete(r.records, id)
	return true, nil
}

func (r *unionRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.records))
	r.records = make(map[string]*record)
	r.companies = make(map[string]string)
	r.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	return n, nil
}

// FindWithinRadius narrows candidates with the R-tree, then keeps those
// whose great-circle angle from center is at most radiusRadians.
func (r *unionRepository) FindWithinRadius(ctx context.Context, center domain.Coordinate, radiusRadians float64) ([]*domain.Union, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.candidates(center, radiusRadians)

	unions := make([]*domain.Union, 0, len(candidates))
	for _, rec := range candidates {
		loc := rec.union.Location
		if loc == nil {
			continue
		}
		angle := utils.CentralAngle(center.Lat, center.Lon, loc.Latitude(), loc.Longitude())
		if angle <= radiusRadians {
			unions = append(unions, rec.union)
		}
	}

	sort.Slice(unions, func(i, j int) bool {
		return r.records[unions[i].ID].seq < r.records[unions[j].ID].seq
	})
	for i, u := range unions {
		unions[i] = u.Clone()
	}
	return unions, nil
}

// candidates returns the records inside the bounding box of the cap. Caps
// that reach a pole or the antimeridian fall back to a full scan.
func (r *unionRepository) candidates(center domain.Coordinate, radiusRadians float64) []*record {
	latDelta := radiusRadians * 180 / math.Pi
	minLat, maxLat := center.Lat-latDelta, center.Lat+latDelta

	if minLat > -90 && maxLat < 90 {
		lonDelta := latDelta / math.Cos(math.Max(math.Abs(minLat), math.Abs(maxLat))*math.Pi/180)
		minLon, maxLon := center.Lon-lonDelta, center.Lon+lonDelta

		if minLon > -180 && maxLon < 180 {
			box, err := rtreego.NewRect(
				rtreego.Point{minLat, minLon},
				[]float64{math.Max(2*latDelta, pointTolerance), math.Max(2*lonDelta, pointTolerance)},
			)
			if err == nil {
				hits := r.tree.SearchIntersect(box)
				recs := make([]*record, 0, len(hits))
				for _, hit := range hits {
					if item, ok := hit.(*locationItem); ok {
						if rec, ok := r.records[item.id]; ok {
							recs = append(recs, rec)
						}
					}
				}
				return recs
			}
			r.logger.Warn("Invalid radius bounding box, scanning all", zap.Error(err))
		}
	}

	recs := make([]*record, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	return recs
}

func (r *unionRepository) index(rec *record) {
	loc := rec.union.Location
	if loc == nil {
		return
	}
	rec.item = &locationItem{
		id:   rec.union.ID,
		rect: rtreego.Point{loc.Latitude(), loc.Longitude()}.ToRect(pointTolerance),
	}
	r.tree.Insert(rec.item)
}

func (r *unionRepository) unindex(rec *record) {
	if rec.item == nil {
		return
	}
	r.tree.Delete(rec.item)
	rec.item = nil
}
