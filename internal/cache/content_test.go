// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/api"
)

func newContentCache(t *testing.T, handler http.Handler) (*ContentCache, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = backend.Close() })

	return NewContentCache(backend, api.New(srv.URL), time.Hour), &calls
}

func TestContentCache_PageServedFromCache(t *testing.T) {
	cc, calls := newContentCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page": map[string]any{"id": 1, "slug": "about", "title": "About Us"},
		})
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		page, err := cc.Page(ctx, "about")
		if err != nil {
			t.Fatalf("Page() call %d error: %v", i+1, err)
		}
		if page.Slug != "about" {
			t.Errorf("Slug = %q, want about", page.Slug)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestContentCache_DistinctSlugsDistinctEntries(t *testing.T) {
	cc, calls := newContentCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": map[string]any{"id": 1, "slug": r.URL.Path},
		})
	}))

	ctx := context.Background()
	if _, err := cc.Service(ctx, "tax-audit"); err != nil {
		t.Fatalf("Service() error: %v", err)
	}
	if _, err := cc.Service(ctx, "bookkeeping"); err != nil {
		t.Fatalf("Service() error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestContentCache_ErrorNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	cc, calls := newContentCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"services": []any{}})
	}))

	ctx := context.Background()
	if _, err := cc.Services(ctx); err == nil {
		t.Fatal("expected error while upstream failing")
	}

	fail.Store(false)
	if _, err := cc.Services(ctx); err != nil {
		t.Fatalf("Services() after recovery error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestContentCache_BlogPageKeyedByQuery(t *testing.T) {
	cc, calls := newContentCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.BlogPage{CurrentPage: 1, PerPage: 6})
	}))

	ctx := context.Background()
	if _, err := cc.BlogPage(ctx, 1, 6, ""); err != nil {
		t.Fatalf("BlogPage() error: %v", err)
	}
	if _, err := cc.BlogPage(ctx, 2, 6, ""); err != nil {
		t.Fatalf("BlogPage() error: %v", err)
	}
	if _, err := cc.BlogPage(ctx, 1, 6, "Insurance"); err != nil {
		t.Fatalf("BlogPage() error: %v", err)
	}
	// Repeat of the first query must hit the cache.
	if _, err := cc.BlogPage(ctx, 1, 6, ""); err != nil {
		t.Fatalf("BlogPage() error: %v", err)
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3", got)
	}
}

func TestContentCache_Warm(t *testing.T) {
	cc, calls := newContentCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages":
			_ = json.NewEncoder(w).Encode(map[string]any{"pages": []any{}})
		case "/services", "/services/featured":
			_ = json.NewEncoder(w).Encode(map[string]any{"services": []any{}})
		case "/blog/categories":
			_ = json.NewEncoder(w).Encode(map[string]any{"categories": []string{"Tax"}})
		case "/blog/recent":
			_ = json.NewEncoder(w).Encode(map[string]any{"posts": []any{}})
		case "/settings/public":
			_ = json.NewEncoder(w).Encode(map[string]any{"settings": map[string]any{"site_name": "FinanceClinics"}})
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	if err := cc.Warm(ctx); err != nil {
		t.Fatalf("Warm() error: %v", err)
	}
	warmCalls := calls.Load()
	if warmCalls != 6 {
		t.Errorf("upstream calls during warm = %d, want 6", warmCalls)
	}

	// Warmed entries serve without new upstream traffic.
	if _, err := cc.Categories(ctx); err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	if _, err := cc.Settings(ctx); err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if got := calls.Load(); got != warmCalls {
		t.Errorf("upstream calls after warm = %d, want %d", got, warmCalls)
	}
}
