package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/union-tracker/internal/domain"
)

const idField = "_id"

// documentField maps a public field path onto the stored document.
func documentField(field string) string {
	if domain.CanonicalField(field) == domain.FieldIDName {
		return idField
	}
	return field
}

// documentValue converts id strings to ObjectIDs. Strings that are not
// valid hex are kept as is and simply match nothing.
func documentValue(field string, v interface{}) interface{} {
	if documentField(field) != idField {
		return v
	}
	switch vv := v.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(vv); err == nil {
			return oid
		}
	case []interface{}:
		out := make(bson.A, len(vv))
		for i, item := range vv {
			out[i] = documentValue(field, item)
		}
		return out
	}
	return v
}

// buildFilter translates conditions to a filter document. Several
// conditions on one field are merged into a single operator document.
func buildFilter(conditions []domain.Condition) bson.D {
	filter := bson.D{}
	ops := make(map[string]bson.D)
	var order []string

	for _, c := range conditions {
		field := documentField(c.Field)
		if _, seen := ops[field]; !seen {
			order = append(order, field)
		}
		ops[field] = append(ops[field], bson.E{
			Key:   "$" + string(c.Op),
			Value: documentValue(c.Field, c.Value),
		})
	}

	for _, field := range order {
		fieldOps := ops[field]
		if len(fieldOps) == 1 && fieldOps[0].Key == "$"+string(domain.OpEq) {
			filter = append(filter, bson.E{Key: field, Value: fieldOps[0].Value})
			continue
		}
		filter = append(filter, bson.E{Key: field, Value: fieldOps})
	}
	return filter
}

func buildSort(fields []domain.SortField) bson.D {
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: documentField(f.Field), Value: dir})
	}
	return sort
}

// buildProjection returns nil for an empty selection. Paths nested under
// another selected path are dropped since the server rejects collisions.
func buildProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}

	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		paths = append(paths, documentField(f))
	}

	projection := bson.D{}
	for _, p := range paths {
		if p == idField || hasAncestor(p, paths) {
			continue
		}
		projection = append(projection, bson.E{Key: p, Value: 1})
	}
	if len(projection) == 0 {
		// Only the id was selected.
		projection = append(projection, bson.E{Key: idField, Value: 1})
	}
	return projection
}

func hasAncestor(path string, paths []string) bool {
	for _, other := range paths {
		if other != path && strings.HasPrefix(path, other+".") {
			return true
		}
	}
	return false
}

// buildUpdate returns the $set document for patch.
func buildUpdate(patch domain.UnionPatch) bson.D {
	set := bson.D{}
	add := func(key string, v interface{}) {
		set = append(set, bson.E{Key: key, Value: v})
	}

	if patch.CompanyName != nil {
		add("companyName", *patch.CompanyName)
	}
	if patch.UnionName != nil {
		add("unionName", *patch.UnionName)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Demands != nil {
		add("demands", *patch.Demands)
	}
	if patch.Source != nil {
		add("source", *patch.Source)
	}
	if patch.Location != nil {
		add("location", patch.Location)
	}
	if patch.StartDate != nil {
		add("startDate", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("endDate", *patch.EndDate)
	}
	if patch.Ongoing != nil {
		add("ongoing", *patch.Ongoing)
	}

	return bson.D{{Key: "$set", Value: set}}
}

// radiusFilter selects documents inside the spherical cap around center.
func radiusFilter(center domain.Coordinate, radiusRadians float64) bson.D {
	return bson.D{{
		Key: "location.coordinates",
		Value: bson.D{{
			Key: "$geoWithin",
			Value: bson.D{{
				Key:   "$centerSphere",
				Value: bson.A{bson.A{center.Lon, center.Lat}, radiusRadians},
			}},
		}},
	}}
}
