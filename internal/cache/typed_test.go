// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

func TestTypedCacheRoundTrip(t *testing.T) {
	backend := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	services := NewTypedCache[[]model.Service](backend, time.Hour)
	ctx := context.Background()

	stored := []model.Service{
		{ID: 1, Title: "Hospital Revenue Audit", Slug: "hospital-revenue-audit"},
		{ID: 2, Title: "Clinic Bookkeeping", Slug: "clinic-bookkeeping"},
	}
	if err := services.Set(ctx, keyServices, &stored); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := services.Get(ctx, keyServices)
	if !ok {
		t.Fatal("Get() reported a miss for a freshly stored entry")
	}
	if len(*got) != 2 || (*got)[0].Slug != "hospital-revenue-audit" {
		t.Errorf("Get() = %+v", *got)
	}
}

func TestTypedCacheMiss(t *testing.T) {
	backend := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	pages := NewTypedCache[model.Page](backend, time.Hour)

	if _, ok := pages.Get(context.Background(), keyPage+"about"); ok {
		t.Error("Get() reported a hit for an absent key")
	}
}

func TestTypedCacheCorruptEntryIsAMiss(t *testing.T) {
	backend := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	pages := NewTypedCache[model.Page](backend, time.Hour)
	ctx := context.Background()

	// An entry that fails to decode must read as a miss so the caller
	// reloads from the API instead of failing the request.
	_ = backend.Set(ctx, keyPage+"about", []byte(`not json`), 0)

	if _, ok := pages.Get(ctx, keyPage+"about"); ok {
		t.Error("Get() reported a hit for an undecodable entry")
	}
}

func TestTypedCacheHonorsTTL(t *testing.T) {
	backend := newTestMemoryCache(t, MemoryCacheOptions{DefaultTTL: time.Hour})
	categories := NewTypedCache[[]string](backend, 40*time.Millisecond)
	ctx := context.Background()

	cats := []string{"tax", "compliance"}
	if err := categories.Set(ctx, keyCategories, &cats); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := categories.Get(ctx, keyCategories); !ok {
		t.Fatal("fresh entry missing")
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := categories.Get(ctx, keyCategories); ok {
		t.Error("entry outlived the typed cache TTL")
	}
}
