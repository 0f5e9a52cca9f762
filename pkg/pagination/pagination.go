package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is an offset page request. Construct it through Parse so the bounds
// are always enforced.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block attached to every list response.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// Parse turns raw page/limit query values into bounded Params. Non-numeric
// input falls back to the defaults; numeric input is clamped to page >= 1
// and 1 <= limit <= MaxLimit. Parse never fails.
func Parse(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if v, err := strconv.Atoi(strings.TrimSpace(page)); err == nil {
		p.Page = v
		if p.Page < 1 {
			p.Page = 1
		}
	}
	if v, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil {
		p.Limit = v
		if p.Limit < 1 {
			p.Limit = 1
		}
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	return p
}

// Offset returns the number of rows to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds response metadata for a total match count. TotalPages has a
// floor of 1 so an empty result set never reports zero pages.
func (p Params) Meta(total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages < 1 {
		pages = 1
	}
	return Meta{
		CurrentPage:  p.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
		HasNextPage:  p.Page < pages,
		HasPrevPage:  p.Page > 1,
	}
}
