package dto

import "github.com/union-tracker/internal/domain"

// ListResponse is the result of a list or radius query. Data holds either
// unions or projected documents.
type ListResponse struct {
	Count      int                `json:"count"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Data       []interface{}      `json:"data"`
}

// TokenResponse - issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
