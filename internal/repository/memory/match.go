package memory

import (
	"strings"
	"time"

	"github.com/union-tracker/internal/domain"
)

// matches reports whether u satisfies every condition. Array fields match
// when any element does, the way a document store treats them.
func matches(u *domain.Union, conditions []domain.Condition) bool {
	for _, cond := range conditions {
		if !matchCondition(u, cond) {
			return false
		}
	}
	return true
}

func matchCondition(u *domain.Union, cond domain.Condition) bool {
	v, ok := u.FieldValue(cond.Field)
	if !ok {
		return false
	}

	for _, el := range elements(v) {
		if matchValue(el, cond.Op, cond.Value) {
			return true
		}
	}
	return false
}

func matchValue(v interface{}, op domain.Operator, want interface{}) bool {
	if op == domain.OpIn {
		items, _ := want.([]interface{})
		for _, item := range items {
			if c, ok := compare(v, item); ok && c == 0 {
				return true
			}
		}
		return false
	}

	c, ok := compare(v, want)
	if !ok {
		return false
	}
	switch op {
	case domain.OpEq:
		return c == 0
	case domain.OpGt:
		return c > 0
	case domain.OpGte:
		return c >= 0
	case domain.OpLt:
		return c < 0
	case domain.OpLte:
		return c <= 0
	}
	return false
}

func elements(v interface{}) []interface{} {
	switch vv := v.(type) {
	case []string:
		out := make([]interface{}, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out
	case []float64:
		out := make([]interface{}, len(vv))
		for i, f := range vv {
			out[i] = f
		}
		return out
	}
	return []interface{}{v}
}

// compare orders two scalars of the same type. ok is false for mismatched
// or unsupported types.
func compare(a, b interface{}) (int, bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// sortKey is the value a union is ordered by for field. Arrays sort by
// their first element; missing values sort before everything else.
func sortKey(u *domain.Union, field string) (interface{}, bool) {
	v, ok := u.FieldValue(field)
	if !ok {
		return nil, false
	}
	els := elements(v)
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

func less(a, b *domain.Union, fields []domain.SortField) (bool, bool) {
	for _, f := range fields {
		av, aok := sortKey(a, f.Field)
		bv, bok := sortKey(b, f.Field)

		var c int
		switch {
		case !aok && !bok:
			continue
		case !aok:
			c = -1
		case !bok:
			c = 1
		default:
			c, _ = compare(av, bv)
		}
		if c == 0 {
			continue
		}
		if f.Desc {
			return c > 0, true
		}
		return c < 0, true
	}
	return false, false
}
