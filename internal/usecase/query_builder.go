package usecase

import (
	stderrors "errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/pkg/errors"
	"github.com/union-tracker/internal/usecase/dto"
)

// Reserved list parameters. Everything else in the query string is a filter.
const (
	paramSelect = "select"
	paramSort   = "sort"
	paramPage   = "page"
	paramLimit  = "limit"
)

const defaultPageLimit = 10

var reservedParams = map[string]bool{
	paramSelect: true,
	paramSort:   true,
	paramPage:   true,
	paramLimit:  true,
}

// defaultSort is applied when the request has no sort parameter.
var defaultSort = []domain.SortField{{Field: "createdAt", Desc: true}}

// QueryBuilder turns list query parameters into a domain.ListQuery.
//
// Filter keys take the form field, field[op] or nested[path][op], where op
// is exactly one of gt, gte, lt, lte or in. Any other bracketed token is a
// nested path segment, so "age[ingte]" filters the field "age.ingte" by
// equality. Values are never inspected for operator tokens.
type QueryBuilder struct {
	defaultLimit int
}

// NewQueryBuilder creates a QueryBuilder; a non-positive defaultLimit means 10.
func NewQueryBuilder(defaultLimit int) *QueryBuilder {
	if defaultLimit < 1 {
		defaultLimit = defaultPageLimit
	}
	return &QueryBuilder{defaultLimit: defaultLimit}
}

// Build parses params. It fails only when a filter value cannot be cast to
// the type of its field.
func (b *QueryBuilder) Build(params url.Values) (domain.ListQuery, error) {
	conditions, err := b.conditions(params)
	if err != nil {
		return domain.ListQuery{}, err
	}

	q := domain.ListQuery{
		Conditions: conditions,
		Select:     parseSelect(first(params, paramSelect)),
		Sort:       parseSort(first(params, paramSort)),
	}

	if page := first(params, paramPage); page != "" {
		q.Page = &domain.PageRequest{
			Page:  positiveOr(page, 1),
			Limit: positiveOr(first(params, paramLimit), b.defaultLimit),
		}
	}

	return q, nil
}

func (b *QueryBuilder) conditions(params url.Values) ([]domain.Condition, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		if !reservedParams[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	conditions := make([]domain.Condition, 0, len(keys))
	for _, key := range keys {
		values := params[key]
		if len(values) == 0 {
			continue
		}

		field, op := parseFilterKey(key)
		field = domain.CanonicalField(field)
		kind := domain.UnionFieldKind(field)

		cond := domain.Condition{Field: field, Op: op}
		switch {
		case op == domain.OpIn:
			items, err := castList(field, kind, splitList(values))
			if err != nil {
				return nil, err
			}
			cond.Value = items
		case op == domain.OpEq && len(values) > 1:
			// Repeated equality parameters match any of the values.
			items, err := castList(field, kind, values)
			if err != nil {
				return nil, err
			}
			cond.Op = domain.OpIn
			cond.Value = items
		default:
			v, err := castValue(field, kind, values[len(values)-1])
			if err != nil {
				return nil, err
			}
			cond.Value = v
		}
		conditions = append(conditions, cond)
	}

	return conditions, nil
}

// parseFilterKey splits "a[b][gte]" into ("a.b", gte). Keys with unbalanced
// brackets are returned unchanged as equality filters.
func parseFilterKey(key string) (string, domain.Operator) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, domain.OpEq
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return key, domain.OpEq
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return key, domain.OpEq
		}
		segment := rest[1:end]
		if segment == "" || strings.ContainsAny(segment, "[") {
			return key, domain.OpEq
		}
		segments = append(segments, segment)
		rest = rest[end+1:]
	}

	op := domain.OpEq
	if last, ok := domain.ParseOperator(segments[len(segments)-1]); ok && len(segments) > 1 {
		op = last
		segments = segments[:len(segments)-1]
	}

	return strings.Join(segments, "."), op
}

func castValue(field string, kind domain.FieldKind, raw string) (interface{}, error) {
	switch kind {
	case domain.FieldBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidFilter(field, raw)
		}
		return v, nil
	case domain.FieldTime:
		v, err := dto.ParseDate(raw)
		if err != nil {
			return nil, invalidFilter(field, raw)
		}
		return v, nil
	case domain.FieldNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, invalidFilter(field, raw)
		}
		return v, nil
	}
	return raw, nil
}

func castList(field string, kind domain.FieldKind, raws []string) ([]interface{}, error) {
	items := make([]interface{}, 0, len(raws))
	for _, raw := range raws {
		v, err := castValue(field, kind, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func invalidFilter(field, raw string) error {
	return errors.ErrValidation.WithMessage("Invalid value %q for field %s", raw, field)
}

// splitList flattens comma separated and repeated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseSelect(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]bool)
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		f = domain.CanonicalField(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	return fields
}

func parseSort(raw string) []domain.SortField {
	var fields []domain.SortField
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		desc := strings.HasPrefix(f, "-")
		f = domain.CanonicalField(strings.TrimLeft(f, "-+"))
		if f == "" {
			continue
		}
		fields = append(fields, domain.SortField{Field: f, Desc: desc})
	}
	if len(fields) == 0 {
		return append([]domain.SortField(nil), defaultSort...)
	}
	return fields
}

func first(params url.Values, key string) string {
	if values := params[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// positiveOr parses raw as a positive integer, falling back to def.
// Values above domain.MaxPageValue, including ones too large to parse,
// are clamped to it.
func positiveOr(raw string, def int) int {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return domain.MaxPageValue
		}
		return def
	}
	if n < 1 {
		return def
	}
	if n > domain.MaxPageValue {
		return domain.MaxPageValue
	}
	return int(n)
}
