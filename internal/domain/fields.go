package domain

import "strings"

// FieldKind is the value type of a filterable union field.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldBool
	FieldTime
	FieldNumber
	FieldID
)

// FieldIDName is the public name of the record id.
const FieldIDName = "id"

var unionFieldKinds = map[string]FieldKind{
	FieldIDName:                 FieldID,
	"_id":                       FieldID,
	"companyName":               FieldString,
	"unionName":                 FieldString,
	"slug":                      FieldString,
	"description":               FieldString,
	"demands":                   FieldString,
	"source":                    FieldString,
	"location.type":             FieldString,
	"location.coordinates":      FieldNumber,
	"location.formattedAddress": FieldString,
	"location.street":           FieldString,
	"location.city":             FieldString,
	"location.state":            FieldString,
	"location.zipcode":          FieldString,
	"location.country":          FieldString,
	"startDate":                 FieldTime,
	"endDate":                   FieldTime,
	"ongoing":                   FieldBool,
	"createdAt":                 FieldTime,
}

// UnionFieldKind returns the kind of field; unknown fields are strings.
func UnionFieldKind(field string) FieldKind {
	if kind, ok := unionFieldKinds[field]; ok {
		return kind
	}
	return FieldString
}

// CanonicalField maps "_id" to "id"; other names are returned unchanged.
func CanonicalField(field string) string {
	if field == "_id" {
		return FieldIDName
	}
	return field
}

// FieldValue returns the value stored at a dotted field path. ok is false
// when the path is unknown or the value is unset.
func (u *Union) FieldValue(path string) (interface{}, bool) {
	switch CanonicalField(path) {
	case FieldIDName:
		return u.ID, true
	case "companyName":
		return u.CompanyName, true
	case "unionName":
		return u.UnionName, true
	case "slug":
		return u.Slug, true
	case "description":
		return u.Description, true
	case "demands":
		return u.Demands, true
	case "source":
		return u.Source, true
	case "startDate":
		return u.StartDate, true
	case "endDate":
		if u.EndDate == nil {
			return nil, false
		}
		return *u.EndDate, true
	case "ongoing":
		return u.Ongoing, true
	case "createdAt":
		return u.CreatedAt, true
	}

	if rest, found := strings.CutPrefix(path, "location."); found {
		if u.Location == nil {
			return nil, false
		}
		return u.Location.fieldValue(rest)
	}
	return nil, false
}

func (l *Location) fieldValue(name string) (interface{}, bool) {
	var v string
	switch name {
	case "type":
		v = l.Type
	case "coordinates":
		return []float64{l.Coordinates[0], l.Coordinates[1]}, true
	case "formattedAddress":
		v = l.FormattedAddress
	case "street":
		v = l.Street
	case "city":
		v = l.City
	case "state":
		v = l.State
	case "zipcode":
		v = l.Zipcode
	case "country":
		v = l.Country
	default:
		return nil, false
	}
	return v, v != ""
}
