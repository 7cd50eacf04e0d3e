package mongo_test

import (
	"context"
	"fmt"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/domain/repository"
	"github.com/union-tracker/internal/pkg/utils"
	"github.com/union-tracker/internal/repository/memory"
	unionmongo "github.com/union-tracker/internal/repository/mongo"
)

// setupTestRepository connects to MONGO_URI (default localhost) and returns a
// repository over a fresh indexed collection, or skips the test.
func setupTestRepository(t *testing.T) repository.UnionRepository {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	cfg := &config.MongoConfig{
		URI:            uri,
		Database:       "union_tracker_test",
		ConnectTimeout: 2 * time.Second,
	}

	db, err := unionmongo.New(cfg, zap.NewNop())
	if err != nil {
		t.Skipf("MongoDB not available for integration tests: %v", err)
	}

	collection := "unions_" + uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.EnsureIndexes(ctx, collection))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Collection(collection).Drop(ctx)
		_ = db.Close(ctx)
	})

	return unionmongo.NewUnionRepository(db, collection)
}

// testUnions builds n unions with millisecond-precision times, as stored.
func testUnions(n int) []*domain.Union {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	unions := make([]*domain.Union, 0, n)
	for i := 0; i < n; i++ {
		unions = append(unions, &domain.Union{
			CompanyName: fmt.Sprintf("Company %02d", i),
			UnionName:   "Workers United",
			Slug:        fmt.Sprintf("company-%02d", i),
			Description: "strike",
			Demands:     []string{"pay", fmt.Sprintf("demand-%d", i%3)},
			Source:      []string{},
			StartDate:   base.AddDate(0, 0, i),
			Ongoing:     i%2 == 0,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	return unions
}

func seedRepo(t *testing.T, repo repository.UnionRepository, unions []*domain.Union) {
	t.Helper()
	for _, u := range unions {
		require.NoError(t, repo.Create(context.Background(), u.Clone()))
	}
}

func companyNames(unions []*domain.Union) []string {
	names := make([]string, len(unions))
	for i, u := range unions {
		names[i] = u.CompanyName
	}
	return names
}

func TestUnionRepository_CRUD(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	u := testUnions(1)[0]
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Company 00", got.CompanyName)
	assert.Equal(t, []string{"pay", "demand-0"}, got.Demands)
	assert.True(t, u.StartDate.Equal(got.StartDate))
	assert.Nil(t, got.Location)

	name := "Company Renamed"
	updated, err := repo.Update(ctx, u.ID, domain.UnionPatch{CompanyName: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, name, updated.CompanyName)
	assert.Equal(t, "company-00", updated.Slug)

	unchanged, err := repo.Update(ctx, u.ID, domain.UnionPatch{})
	require.NoError(t, err)
	assert.Equal(t, name, unchanged.CompanyName)

	deleted, err := repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUnionRepository_InvalidID(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "not-a-hex-id")
	assert.NoError(t, err)
	assert.Nil(t, got)

	name := "x"
	updated, err := repo.Update(ctx, "not-a-hex-id", domain.UnionPatch{CompanyName: &name})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.Delete(ctx, "not-a-hex-id")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestUnionRepository_DuplicateCompanyName(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	unions := testUnions(2)
	seedRepo(t, repo, unions)

	dup := testUnions(1)[0]
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	all, err := repo.Find(ctx, domain.FindOptions{Sort: []domain.SortField{{Field: "createdAt"}}})
	require.NoError(t, err)
	require.Len(t, all, 2)

	taken := all[0].CompanyName
	_, err = repo.Update(ctx, all[1].ID, domain.UnionPatch{CompanyName: &taken})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestUnionRepository_FindWindow(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	seedRepo(t, repo, testUnions(25))

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	newestFirst := []domain.SortField{{Field: "createdAt", Desc: true}}

	page2, err := repo.Find(ctx, domain.FindOptions{Sort: newestFirst, Skip: 10, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page2, 10)
	assert.Equal(t, "Company 14", page2[0].CompanyName)
	assert.Equal(t, "Company 05", page2[9].CompanyName)

	page3, err := repo.Find(ctx, domain.FindOptions{Sort: newestFirst, Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	past, err := repo.Find(ctx, domain.FindOptions{Sort: newestFirst, Skip: int64(domain.MaxPageValue) * 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past)

	removed, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), removed)

	total, err = repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUnionRepository_Projection(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	seedRepo(t, repo, testUnions(3))

	unions, err := repo.Find(ctx, domain.FindOptions{
		Select: []string{"companyName"},
		Sort:   []domain.SortField{{Field: "companyName"}},
	})
	require.NoError(t, err)
	require.Len(t, unions, 3)

	for _, u := range unions {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.CompanyName)
		assert.Empty(t, u.Slug)
		assert.Empty(t, u.Demands)
	}
}

// TestUnionRepository_MatchesMemoryStore runs the same queries against both
// drivers and expects identical results.
func TestUnionRepository_MatchesMemoryStore(t *testing.T) {
	repo := setupTestRepository(t)
	mem := memory.NewUnionRepository(zap.NewNop())
	ctx := context.Background()

	unions := testUnions(25)
	seedRepo(t, repo, unions)
	seedRepo(t, mem, unions)

	cutoff := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	queries := map[string][]domain.Condition{
		"all":           nil,
		"ongoing":       {{Field: "ongoing", Op: domain.OpEq, Value: true}},
		"startDate gte": {{Field: "startDate", Op: domain.OpGte, Value: cutoff}},
		"startDate range": {
			{Field: "startDate", Op: domain.OpGt, Value: cutoff.AddDate(0, 0, -10)},
			{Field: "startDate", Op: domain.OpLte, Value: cutoff},
		},
		"array element": {{Field: "demands", Op: domain.OpEq, Value: "demand-1"}},
		"in":            {{Field: "companyName", Op: domain.OpIn, Value: []interface{}{"Company 03", "Company 07", "Nobody"}}},
		"combined": {
			{Field: "ongoing", Op: domain.OpEq, Value: false},
			{Field: "startDate", Op: domain.OpGte, Value: cutoff},
		},
	}

	for name, conditions := range queries {
		t.Run(name, func(t *testing.T) {
			opts := domain.FindOptions{
				Conditions: conditions,
				Sort:       []domain.SortField{{Field: "companyName"}},
			}

			fromMongo, err := repo.Find(ctx, opts)
			require.NoError(t, err)
			fromMemory, err := mem.Find(ctx, opts)
			require.NoError(t, err)
			assert.Equal(t, companyNames(fromMemory), companyNames(fromMongo))

			mongoCount, err := repo.Count(ctx, conditions)
			require.NoError(t, err)
			memCount, err := mem.Count(ctx, conditions)
			require.NoError(t, err)
			assert.Equal(t, memCount, mongoCount)
		})
	}

	gte, err := repo.Find(ctx, domain.FindOptions{Conditions: queries["startDate gte"]})
	require.NoError(t, err)
	assert.Len(t, gte, 11)
}

func TestUnionRepository_FindWithinRadius(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	places := []struct {
		name     string
		lat, lon float64
	}{
		{"Boston", 42.3601, -71.0589},
		{"Cambridge", 42.3736, -71.1097},
		{"Quincy", 42.2529, -71.0023},
		{"Worcester", 42.2626, -71.8023},
		{"Providence", 41.8240, -71.4128},
	}
	for i, p := range places {
		u := testUnions(i + 1)[i]
		u.CompanyName = p.name
		u.Location = domain.NewLocation(domain.GeocodeResult{Latitude: p.lat, Longitude: p.lon})
		require.NoError(t, repo.Create(ctx, u))
	}

	center := domain.Coordinate{Lat: 42.3601, Lon: -71.0589}
	for _, miles := range []float64{0.5, 10, 45} {
		t.Run(fmt.Sprintf("%.1fmi", miles), func(t *testing.T) {
			radius := utils.AngularRadius(miles, utils.EarthRadiusMiles)

			found, err := repo.FindWithinRadius(ctx, center, radius)
			require.NoError(t, err)

			var want []string
			for _, p := range places {
				if utils.CentralAngle(center.Lat, center.Lon, p.lat, p.lon) <= radius {
					want = append(want, p.name)
				}
			}
			got := companyNames(found)
			sort.Strings(got)
			sort.Strings(want)
			assert.Equal(t, want, got)
		})
	}

	found, err := repo.FindWithinRadius(ctx, center, 10.0/3963.0)
	require.NoError(t, err)
	got := companyNames(found)
	sort.Strings(got)
	assert.Equal(t, []string{"Boston", "Cambridge", "Quincy"}, got)
}
