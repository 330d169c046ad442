// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-1", 1},
		{"page=abc", 1},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/admin/leads?"+tt.query, nil)
		if got := ParsePageParam(r); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestBuildAdminPagination(t *testing.T) {
	p := BuildAdminPagination(2, 5, 100, 20, "/admin/leads", url.Values{"status": {"new"}})

	if !p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev=%v HasNext=%v, want both true", p.HasPrev, p.HasNext)
	}
	if p.PrevPage != 1 || p.NextPage != 3 {
		t.Errorf("PrevPage=%d NextPage=%d", p.PrevPage, p.NextPage)
	}
	if got := p.PageURL(3); got != "/admin/leads?status=new&page=3" {
		t.Errorf("PageURL(3) = %q", got)
	}
	if !p.ShouldShow() {
		t.Error("ShouldShow() = false with 5 pages")
	}
	if got := p.PageRange(); got != "21-40" {
		t.Errorf("PageRange() = %q", got)
	}
}

func TestBuildAdminPaginationDropsPageParam(t *testing.T) {
	p := BuildAdminPagination(1, 3, 60, 20, "/admin/posts", url.Values{"page": {"7"}})

	if p.QueryString != "" {
		t.Errorf("QueryString = %q, want empty", p.QueryString)
	}
	if got := p.PageURL(2); got != "/admin/posts?page=2" {
		t.Errorf("PageURL(2) = %q", got)
	}
}

func TestBuildAdminPaginationSinglePage(t *testing.T) {
	p := BuildAdminPagination(1, 0, 0, 20, "/admin/posts", nil)

	if p.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", p.TotalPages)
	}
	if p.ShouldShow() {
		t.Error("ShouldShow() = true with one page")
	}
	if p.HasPrev || p.HasNext {
		t.Error("single page should have no prev/next")
	}
}

func TestBuildAdminPaginationEllipsis(t *testing.T) {
	p := BuildAdminPagination(10, 20, 400, 20, "/admin/leads", nil)

	var ellipses, numbered int
	for _, page := range p.Pages {
		if page.IsEllipsis {
			ellipses++
		} else {
			numbered++
		}
	}
	if ellipses != 2 {
		t.Errorf("ellipses = %d, want 2", ellipses)
	}
	// First, last, and the five around the current page.
	if numbered != 7 {
		t.Errorf("numbered links = %d, want 7", numbered)
	}
}
