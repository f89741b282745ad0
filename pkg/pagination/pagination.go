// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides client-side paging over an in-memory list.
//
// # Overview
//
// The remote API returns every post in one response; pages are cut locally.
// A [Page] carries the window of items plus everything a view needs to draw
// its controls: page numbers and whether "previous" and "next" are enabled.
package pagination

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 9
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds a requested page and limit.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps invalid values to [DefaultPage] and [DefaultLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the index of the first item of the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in machine-readable output.
type Meta struct {
	Page       int `json:"page"        yaml:"page"`
	Limit      int `json:"limit"       yaml:"limit"`
	Total      int `json:"total"       yaml:"total"`
	TotalPages int `json:"total_pages" yaml:"total_pages"`
}

// NewMeta constructs pagination metadata.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page is one window of a list together with its controls.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// HasPrev reports whether the "previous" control is enabled.
func (p Page[T]) HasPrev() bool { return p.Meta.Page > 1 }

// HasNext reports whether the "next" control is enabled.
func (p Page[T]) HasNext() bool { return p.Meta.Page < p.Meta.TotalPages }

// Numbers lists every page number, 1-indexed.
func (p Page[T]) Numbers() []int {
	numbers := make([]int, p.Meta.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

// ShowControls reports whether the list is long enough to need page controls.
func (p Page[T]) ShowControls() bool { return p.Meta.TotalPages > 1 }

// First is the 1-indexed position of the first item on the page, or 0.
func (p Page[T]) First() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Meta.Page-1)*p.Meta.Limit + 1
}

// Last is the 1-indexed position of the last item on the page, or 0.
func (p Page[T]) Last() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.First() + len(p.Items) - 1
}

// Paginate cuts items into the requested page.
//
// # Clamping
//
// Pages below 1 become 1, pages beyond the end become the last page. An empty
// list yields page 1 of 0 with no items.
func Paginate[T any](items []T, params Params) Page[T] {
	params = params.Normalize()
	meta := NewMeta(params.Page, params.Limit, len(items))

	if meta.TotalPages == 0 {
		meta.Page = DefaultPage
		return Page[T]{Items: []T{}, Meta: meta}
	}
	if meta.Page > meta.TotalPages {
		meta.Page = meta.TotalPages
	}

	start := (meta.Page - 1) * meta.Limit
	end := min(start+meta.Limit, len(items))

	return Page[T]{Items: items[start:end], Meta: meta}
}
