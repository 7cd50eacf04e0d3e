package domain

import "math"

// Operator is a filter comparison.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

// ParseOperator maps a bracketed query token to an Operator. Only exact
// tokens are recognised.
func ParseOperator(token string) (Operator, bool) {
	switch Operator(token) {
	case OpGt, OpGte, OpLt, OpLte, OpIn:
		return Operator(token), true
	}
	return "", false
}

// Condition is one filter predicate on a union field.
type Condition struct {
	Field string
	Op    Operator
	Value interface{}
}

// SortField orders results by Field; ties fall through to the next SortField.
type SortField struct {
	Field string
	Desc  bool
}

// MaxPageValue caps page and limit so their product fits in an int64.
const MaxPageValue = math.MaxInt32

// Pagination count scopes: the total counts the filtered records or the
// whole collection.
const (
	CountScopeFiltered   = "filtered"
	CountScopeCollection = "collection"
)

// PageRequest is a 1-indexed page of Limit records. Page and Limit are in
// [1, MaxPageValue].
type PageRequest struct {
	Page  int
	Limit int
}

// StartIndex is the number of records skipped before this page.
func (p PageRequest) StartIndex() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// EndIndex is the index one past the last record of this page.
func (p PageRequest) EndIndex() int64 {
	return int64(p.Page) * int64(p.Limit)
}

// ListQuery is the store-independent form of a list request.
type ListQuery struct {
	Conditions []Condition
	Select     []string
	Sort       []SortField
	Page       *PageRequest // nil: unpaginated
}

// FindOptions is the query a UnionRepository executes.
type FindOptions struct {
	Conditions []Condition
	Select     []string
	Sort       []SortField
	Skip       int64
	Limit      int64 // 0 means no limit
}
