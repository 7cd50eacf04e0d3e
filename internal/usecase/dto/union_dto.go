package dto

import (
	"strings"

	"github.com/union-tracker/internal/domain"
)

// CreateUnionRequest - request body for creating a union
type CreateUnionRequest struct {
	CompanyName string   `json:"companyName" validate:"required,max=100"`
	UnionName   string   `json:"unionName" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=750"`
	Demands     []string `json:"demands" validate:"required,min=1,max=10"`
	Source      []string `json:"source,omitempty" validate:"omitempty,dive,sourceurl"`
	Address     string   `json:"address" validate:"required"`
	StartDate   *Date    `json:"startDate" validate:"required"`
	EndDate     *Date    `json:"endDate,omitempty"`
	Ongoing     *bool    `json:"ongoing" validate:"required"`
}

// Normalize trims string fields in place.
func (r *CreateUnionRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.UnionName = strings.TrimSpace(r.UnionName)
	r.Description = strings.TrimSpace(r.Description)
	r.Address = strings.TrimSpace(r.Address)
	r.Demands = trimAll(r.Demands)
	r.Source = trimAll(r.Source)
}

// ToUnion converts the request into a union without derived fields.
func (r *CreateUnionRequest) ToUnion() *domain.Union {
	u := &domain.Union{
		CompanyName: r.CompanyName,
		UnionName:   r.UnionName,
		Description: r.Description,
		Demands:     r.Demands,
		Source:      r.Source,
		EndDate:     r.EndDate.TimePtr(),
	}
	if r.StartDate != nil {
		u.StartDate = r.StartDate.Time
	}
	if r.Ongoing != nil {
		u.Ongoing = *r.Ongoing
	}
	if u.Source == nil {
		u.Source = []string{}
	}
	return u
}

// UpdateUnionRequest - partial update; nil fields are left untouched
type UpdateUnionRequest struct {
	CompanyName *string  `json:"companyName,omitempty" validate:"omitnil,min=1,max=100"`
	UnionName   *string  `json:"unionName,omitempty" validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitnil,min=1,max=750"`
	Demands     []string `json:"demands,omitempty" validate:"omitnil,min=1,max=10"`
	Source      []string `json:"source,omitempty" validate:"omitnil,dive,sourceurl"`
	Address     *string  `json:"address,omitempty" validate:"omitnil,min=1"`
	StartDate   *Date    `json:"startDate,omitempty"`
	EndDate     *Date    `json:"endDate,omitempty"`
	Ongoing     *bool    `json:"ongoing,omitempty"`
}

// Normalize trims string fields in place.
func (r *UpdateUnionRequest) Normalize() {
	r.CompanyName = trimPtr(r.CompanyName)
	r.UnionName = trimPtr(r.UnionName)
	r.Description = trimPtr(r.Description)
	r.Address = trimPtr(r.Address)
	if r.Demands != nil {
		r.Demands = trimAll(r.Demands)
	}
	if r.Source != nil {
		r.Source = trimAll(r.Source)
	}
}

// ToPatch converts the request into a store patch without derived fields.
func (r *UpdateUnionRequest) ToPatch() domain.UnionPatch {
	patch := domain.UnionPatch{
		CompanyName: r.CompanyName,
		UnionName:   r.UnionName,
		Description: r.Description,
		StartDate:   r.StartDate.TimePtr(),
		EndDate:     r.EndDate.TimePtr(),
		Ongoing:     r.Ongoing,
	}
	if r.Demands != nil {
		demands := r.Demands
		patch.Demands = &demands
	}
	if r.Source != nil {
		source := r.Source
		patch.Source = &source
	}
	return patch
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
