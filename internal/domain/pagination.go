package domain

// PageLink points at a neighbouring page.
type PageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the pagination block of a list envelope. Both links are
// omitted on a single page result.
type Pagination struct {
	Next *PageLink `json:"next,omitempty"`
	Prev *PageLink `json:"prev,omitempty"`
}

// NewPagination computes the links for page p out of total records.
func NewPagination(p PageRequest, total int64) *Pagination {
	pagination := &Pagination{}
	if p.EndIndex() < total {
		pagination.Next = &PageLink{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.StartIndex() > 0 {
		pagination.Prev = &PageLink{Page: p.Page - 1, Limit: p.Limit}
	}
	return pagination
}
