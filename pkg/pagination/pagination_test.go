// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/codejourney/pkg/pagination"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

/*
TestPaginate_TenItemsNinePerPage is the canonical list scenario.
*/
func TestPaginate_TenItemsNinePerPage(t *testing.T) {
	items := seq(10)

	first := pagination.Paginate(items, pagination.Params{Page: 1, Limit: 9})
	assert.Equal(t, seq(9), first.Items)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.Equal(t, []int{1, 2}, first.Numbers())
	assert.True(t, first.ShowControls())
	assert.Equal(t, 1, first.First())
	assert.Equal(t, 9, first.Last())

	second := pagination.Paginate(items, pagination.Params{Page: 2, Limit: 9})
	assert.Equal(t, []int{10}, second.Items)
	assert.True(t, second.HasPrev())
	assert.False(t, second.HasNext())
	assert.Equal(t, 10, second.First())
	assert.Equal(t, 10, second.Last())
}

/*
TestPaginate_Clamping covers out-of-range and invalid requests.
*/
func TestPaginate_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		params   pagination.Params
		page     int
		limit    int
		itemsLen int
	}{
		{"page_zero", 10, pagination.Params{Page: 0, Limit: 9}, 1, 9, 9},
		{"past_end", 10, pagination.Params{Page: 7, Limit: 9}, 2, 9, 1},
		{"bad_limit", 30, pagination.Params{Page: 1, Limit: -3}, 1, 9, 9},
		{"huge_limit", 30, pagination.Params{Page: 1, Limit: 1000}, 1, 9, 9},
		{"empty", 0, pagination.Params{Page: 3, Limit: 9}, 1, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pagination.Paginate(seq(tt.total), tt.params)
			assert.Equal(t, tt.page, page.Meta.Page)
			assert.Equal(t, tt.limit, page.Meta.Limit)
			assert.Len(t, page.Items, tt.itemsLen)
		})
	}
}

/*
TestPaginate_SinglePage hides the controls when everything fits.
*/
func TestPaginate_SinglePage(t *testing.T) {
	page := pagination.Paginate(seq(9), pagination.Params{Page: 1, Limit: 9})
	assert.False(t, page.ShowControls())
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())

	empty := pagination.Paginate([]int{}, pagination.Params{Page: 1, Limit: 9})
	assert.Equal(t, 0, empty.First())
	assert.Empty(t, empty.Numbers())
}

/*
TestNewMeta calculates total pages with ceiling division.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 2, pagination.NewMeta(1, 9, 10).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, 9, 9).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 9).TotalPages)
	assert.Equal(t, 18, pagination.Params{Page: 3, Limit: 9}.Offset())
}
