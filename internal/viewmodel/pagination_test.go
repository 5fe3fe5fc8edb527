// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 10, 1},
		{"less than one page", 5, 10, 1},
		{"exactly one page", 10, 10, 1},
		{"one item over", 11, 10, 2},
		{"multiple pages", 25, 10, 3},
		{"exact multiple", 30, 10, 3},
		{"zero per page", 10, 0, 1},
		{"negative per page", 10, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPages(tt.totalItems, tt.perPage)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"valid page", 3, 5, 3},
		{"first page", 1, 5, 1},
		{"last page", 5, 5, 5},
		{"below minimum", 0, 5, 1},
		{"negative page", -1, 5, 1},
		{"above maximum", 10, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPage(tt.page, tt.totalPages)
			if got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantLen   int
		wantFirst int
	}{
		{"first page", 1, 7, 7, 0},
		{"middle page", 2, 7, 7, 7},
		{"partial last page", 4, 7, 2, 21},
		{"past the end", 5, 7, 0, 0},
		{"page zero", 0, 7, 0, 0},
		{"zero per page", 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageSlice(items, tt.page, tt.perPage)
			if len(got) != tt.wantLen {
				t.Fatalf("PageSlice(23 items, %d, %d) returned %d items, want %d", tt.page, tt.perPage, len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.wantFirst {
				t.Errorf("first item = %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}

// Slices must never exceed perPage items and never reach past the input,
// whatever the page number.
func TestPageSliceBounds(t *testing.T) {
	for totalItems := 0; totalItems <= 30; totalItems++ {
		items := make([]int, totalItems)
		for i := range items {
			items[i] = i
		}
		for perPage := 1; perPage <= 9; perPage++ {
			for page := -1; page <= 8; page++ {
				got := PageSlice(items, page, perPage)
				if len(got) > perPage {
					t.Fatalf("PageSlice(%d items, page %d, perPage %d) returned %d items", totalItems, page, perPage, len(got))
				}
				for _, v := range got {
					if v < 0 || v >= totalItems {
						t.Fatalf("PageSlice(%d items, page %d, perPage %d) included out-of-range index %d", totalItems, page, perPage, v)
					}
				}
			}
		}
	}
}

// 23 routes at 7 per page: page 4 holds exactly items 21 and 22; pages 0
// and 5 clamp to 1 and 4.
func TestTwentyThreeRoutesSevenPerPage(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	page, totalPages := NormalizePagination(4, len(items), 7)
	if totalPages != 4 || page != 4 {
		t.Fatalf("NormalizePagination(4, 23, 7) = (%d, %d), want (4, 4)", page, totalPages)
	}
	got := PageSlice(items, page, 7)
	if len(got) != 2 || got[0] != 21 || got[1] != 22 {
		t.Fatalf("page 4 slice = %v, want [21 22]", got)
	}

	if page, _ := NormalizePagination(0, 23, 7); page != 1 {
		t.Errorf("page 0 clamped to %d, want 1", page)
	}
	if page, _ := NormalizePagination(5, 23, 7); page != 4 {
		t.Errorf("page 5 clamped to %d, want 4", page)
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/admin/routes?"+tt.query, nil)
		if got := ParsePageParam(r); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestBuildPagination(t *testing.T) {
	params := url.Values{"q": {"express"}, "page": {"9"}}
	p := BuildPagination(2, 23, 7, "/admin/routes", params)

	if p.TotalPages != 4 || p.CurrentPage != 2 {
		t.Fatalf("got page %d of %d, want 2 of 4", p.CurrentPage, p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("page 2 of 4 should have prev and next")
	}
	if p.QueryString != "q=express" {
		t.Errorf("QueryString = %q, want the page param dropped", p.QueryString)
	}
	if got := p.PageURL(3); got != "/admin/routes?q=express&page=3" {
		t.Errorf("PageURL(3) = %q", got)
	}
	if p.PageRange() != "8-14" {
		t.Errorf("PageRange() = %q, want 8-14", p.PageRange())
	}

	// Current page past the end is clamped, never left dangling
	p = BuildPagination(9, 23, 7, "/admin/routes", nil)
	if p.CurrentPage != 4 || p.HasNext {
		t.Errorf("page 9 of 4: got current %d HasNext %v", p.CurrentPage, p.HasNext)
	}

	p = BuildPagination(1, 0, 7, "/admin/routes", nil)
	if p.TotalPages != 1 || p.ShouldShow() {
		t.Errorf("empty collection should collapse to a single hidden page")
	}
	if p.PageRange() != "0-0" {
		t.Errorf("empty PageRange() = %q", p.PageRange())
	}
}
