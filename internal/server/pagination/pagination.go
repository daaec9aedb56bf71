// Package pagination holds page/limit parameters and the metadata returned
// alongside every list.
package pagination

import "math"

// Params selects one page. Page is 1-indexed.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page that was returned.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Normalize fills missing values and clamps Limit to [1, maxLimit].
func (p Params) Normalize(defaultLimit, maxLimit int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// OffsetFits reports whether Offset can be computed without overflowing.
func (p Params) OffsetFits() bool {
	if p.Page < 1 || p.Limit < 1 {
		return true
	}
	return p.Page-1 <= math.MaxInt/p.Limit
}

// NewMeta computes TotalPages = ceil(total / limit).
func NewMeta(p Params, total int) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// Page is a slice of results plus its metadata.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewPage wraps items, substituting an empty slice for nil so JSON renders [].
func NewPage[T any](items []T, p Params, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Data: items, Pagination: NewMeta(p, total)}
}
