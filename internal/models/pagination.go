package models

import "math"

// ListQuery is the uniform filter bag accepted by every list endpoint.
// Search matches a case-insensitive substring of the resource's name field,
// IsActive filters on the active flag when set.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool
}

// Normalize applies the default page/limit and clamps nonsense values.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
}

// Offset returns the row offset for the normalized query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListMeta is the pagination block attached to list responses.
type ListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewListMeta builds the meta block for a normalized query and a total count.
func NewListMeta(q ListQuery, total int64) ListMeta {
	return ListMeta{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}
