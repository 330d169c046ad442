// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ParsePageParam extracts the "page" query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// AdminPagination holds pagination data for admin templates. The upstream
// API reports totals and boundaries; this only builds the page links.
type AdminPagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []AdminPaginationPage
	BaseURL     string
	QueryString string
}

// AdminPaginationPage represents a single page link in admin pagination.
type AdminPaginationPage struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildAdminPagination creates pagination data for admin templates.
// baseURL is the path without query string (e.g., "/admin/leads");
// queryParams are the current query parameters to preserve (e.g., filters).
func BuildAdminPagination(currentPage, totalPages int, totalItems int64, perPage int, baseURL string, queryParams url.Values) AdminPagination {
	if totalPages < 1 {
		totalPages = 1
	}

	p := AdminPagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		BaseURL:     baseURL,
	}

	// Preserve filters but never the page parameter itself
	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
	}

	// Show max 5 pages around current with ellipsis at the edges
	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		p.Pages = append(p.Pages, AdminPaginationPage{Number: 1, URL: p.PageURL(1)})
		if start > 2 {
			p.Pages = append(p.Pages, AdminPaginationPage{IsEllipsis: true})
		}
	}

	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, AdminPaginationPage{
			Number:    i,
			URL:       p.PageURL(i),
			IsCurrent: i == currentPage,
		})
	}

	if end < totalPages {
		if end < totalPages-1 {
			p.Pages = append(p.Pages, AdminPaginationPage{IsEllipsis: true})
		}
		p.Pages = append(p.Pages, AdminPaginationPage{Number: totalPages, URL: p.PageURL(totalPages)})
	}

	return p
}

// PageURL returns the URL for a specific page number.
func (p AdminPagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p AdminPagination) PrevURL() string {
	return p.PageURL(p.PrevPage)
}

// NextURL returns the URL for the next page.
func (p AdminPagination) NextURL() string {
	return p.PageURL(p.NextPage)
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p AdminPagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// PageRange returns a description of the current page range.
func (p AdminPagination) PageRange() string {
	start := (p.CurrentPage-1)*p.PerPage + 1
	end := p.CurrentPage * p.PerPage
	if int64(end) > p.TotalItems {
		end = int(p.TotalItems)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
