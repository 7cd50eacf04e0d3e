package domain

import "time"

// GeoJSONPoint is the only GeoJSON geometry stored on a union.
const GeoJSONPoint = "Point"

// Union is a labour action against a company.
type Union struct {
	ID          string     `json:"id" bson:"-"`
	CompanyName string     `json:"companyName" bson:"companyName"`
	UnionName   string     `json:"unionName" bson:"unionName"`
	Slug        string     `json:"slug" bson:"slug"`
	Description string     `json:"description" bson:"description"`
	Demands     []string   `json:"demands" bson:"demands"`
	Source      []string   `json:"source" bson:"source"`
	Location    *Location  `json:"location,omitempty" bson:"location,omitempty"`
	StartDate   time.Time  `json:"startDate" bson:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Ongoing     bool       `json:"ongoing" bson:"ongoing"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}

// Location is the geocoded derivation of a union's address.
// Coordinates are ordered [longitude, latitude].
type Location struct {
	Type             string     `json:"type" bson:"type"`
	Coordinates      [2]float64 `json:"coordinates" bson:"coordinates"`
	FormattedAddress string     `json:"formattedAddress" bson:"formattedAddress"`
	Street           string     `json:"street,omitempty" bson:"street,omitempty"`
	City             string     `json:"city,omitempty" bson:"city,omitempty"`
	State            string     `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string     `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string     `json:"country,omitempty" bson:"country,omitempty"`
}

// NewLocation builds a Point location from a geocoding result.
func NewLocation(g GeocodeResult) *Location {
	return &Location{
		Type:             GeoJSONPoint,
		Coordinates:      [2]float64{g.Longitude, g.Latitude},
		FormattedAddress: g.FormattedAddress,
		Street:           g.StreetName,
		City:             g.City,
		State:            g.StateCode,
		Zipcode:          g.Zipcode,
		Country:          g.CountryCode,
	}
}

func (l *Location) Longitude() float64 { return l.Coordinates[0] }
func (l *Location) Latitude() float64  { return l.Coordinates[1] }

// UnionPatch is a partial update; nil fields are left untouched.
type UnionPatch struct {
	CompanyName *string
	UnionName   *string
	Slug        *string
	Description *string
	Demands     *[]string
	Source      *[]string
	Location    *Location
	StartDate   *time.Time
	EndDate     *time.Time
	Ongoing     *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p UnionPatch) IsEmpty() bool {
	return p.CompanyName == nil && p.UnionName == nil && p.Slug == nil &&
		p.Description == nil && p.Demands == nil && p.Source == nil &&
		p.Location == nil && p.StartDate == nil && p.EndDate == nil && p.Ongoing == nil
}

// Apply copies the set fields of p onto u.
func (p UnionPatch) Apply(u *Union) {
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.UnionName != nil {
		u.UnionName = *p.UnionName
	}
	if p.Slug != nil {
		u.Slug = *p.Slug
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	if p.Demands != nil {
		u.Demands = append([]string(nil), (*p.Demands)...)
	}
	if p.Source != nil {
		u.Source = append([]string(nil), (*p.Source)...)
	}
	if p.Location != nil {
		loc := *p.Location
		u.Location = &loc
	}
	if p.StartDate != nil {
		u.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		end := *p.EndDate
		u.EndDate = &end
	}
	if p.Ongoing != nil {
		u.Ongoing = *p.Ongoing
	}
}

// Clone returns a deep copy of u.
func (u *Union) Clone() *Union {
	cp := *u
	cp.Demands = append([]string(nil), u.Demands...)
	cp.Source = append([]string(nil), u.Source...)
	if u.Location != nil {
		loc := *u.Location
		cp.Location = &loc
	}
	if u.EndDate != nil {
		end := *u.EndDate
		cp.EndDate = &end
	}
	return &cp
}
