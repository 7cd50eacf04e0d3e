package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUnion() *Union {
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &Union{
		ID:          "5d725a1b7b292f5f8ceff788",
		CompanyName: "Acme Co",
		UnionName:   "Acme Workers United",
		Slug:        "acme-co",
		Demands:     []string{"pay", "hours"},
		Source:      []string{"https://example.com"},
		Location: NewLocation(GeocodeResult{
			Latitude:         42.3601,
			Longitude:        -71.0589,
			FormattedAddress: "1 City Hall Sq, Boston, MA 02201, US",
			City:             "Boston",
			StateCode:        "MA",
			Zipcode:          "02201",
			CountryCode:      "US",
		}),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		Ongoing:   false,
	}
}

func TestNewLocation(t *testing.T) {
	u := sampleUnion()
	require.NotNil(t, u.Location)
	assert.Equal(t, GeoJSONPoint, u.Location.Type)
	assert.Equal(t, [2]float64{-71.0589, 42.3601}, u.Location.Coordinates)
	assert.Equal(t, -71.0589, u.Location.Longitude())
	assert.Equal(t, 42.3601, u.Location.Latitude())
	assert.Equal(t, "MA", u.Location.State)
}

func TestUnion_FieldValue(t *testing.T) {
	u := sampleUnion()

	tests := []struct {
		path   string
		want   interface{}
		wantOK bool
	}{
		{"id", u.ID, true},
		{"_id", u.ID, true},
		{"companyName", "Acme Co", true},
		{"demands", []string{"pay", "hours"}, true},
		{"ongoing", false, true},
		{"endDate", *u.EndDate, true},
		{"location.zipcode", "02201", true},
		{"location.coordinates", []float64{-71.0589, 42.3601}, true},
		{"location.street", nil, false},
		{"location.planet", nil, false},
		{"nickname", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := u.FieldValue(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	u.EndDate = nil
	u.Location = nil
	_, ok := u.FieldValue("endDate")
	assert.False(t, ok)
	_, ok = u.FieldValue("location.city")
	assert.False(t, ok)
}

func TestUnionFieldKind(t *testing.T) {
	assert.Equal(t, FieldBool, UnionFieldKind("ongoing"))
	assert.Equal(t, FieldTime, UnionFieldKind("createdAt"))
	assert.Equal(t, FieldNumber, UnionFieldKind("location.coordinates"))
	assert.Equal(t, FieldID, UnionFieldKind("_id"))
	assert.Equal(t, FieldString, UnionFieldKind("anything.else"))
	assert.Equal(t, "id", CanonicalField("_id"))
	assert.Equal(t, "slug", CanonicalField("slug"))
}

func TestUnionPatch_Apply(t *testing.T) {
	u := sampleUnion()
	assert.True(t, UnionPatch{}.IsEmpty())

	name := "Acme Corp"
	ongoing := true
	demands := []string{"safety"}
	patch := UnionPatch{CompanyName: &name, Ongoing: &ongoing, Demands: &demands}
	assert.False(t, patch.IsEmpty())

	patch.Apply(u)
	assert.Equal(t, "Acme Corp", u.CompanyName)
	assert.True(t, u.Ongoing)
	assert.Equal(t, []string{"safety"}, u.Demands)
	assert.Equal(t, "acme-co", u.Slug, "slug is only changed when the patch sets it")

	demands[0] = "changed"
	assert.Equal(t, "safety", u.Demands[0], "patch slices are copied")
}

func TestUnion_Clone(t *testing.T) {
	u := sampleUnion()
	cp := u.Clone()
	assert.Equal(t, u, cp)

	cp.Demands[0] = "changed"
	cp.Location.City = "Cambridge"
	*cp.EndDate = time.Time{}

	assert.Equal(t, "pay", u.Demands[0])
	assert.Equal(t, "Boston", u.Location.City)
	assert.False(t, u.EndDate.IsZero())
}
