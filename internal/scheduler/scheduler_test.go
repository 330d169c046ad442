// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/cache"
)

func newTestWarmer(t *testing.T, schedule string) (*Warmer, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/pages":
			_ = json.NewEncoder(w).Encode(map[string]any{"pages": []any{}})
		case "/services", "/services/featured":
			_ = json.NewEncoder(w).Encode(map[string]any{"services": []any{}})
		case "/blog/categories":
			_ = json.NewEncoder(w).Encode(map[string]any{"categories": []string{}})
		case "/blog/recent":
			_ = json.NewEncoder(w).Encode(map[string]any{"posts": []any{}})
		case "/settings/public":
			_ = json.NewEncoder(w).Encode(map[string]any{"settings": map[string]any{}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = backend.Close() })

	content := cache.NewContentCache(backend, api.New(srv.URL), time.Hour)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	return New(content, schedule, logger), &calls
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestWarmerWarmPopulatesCache(t *testing.T) {
	w, calls := newTestWarmer(t, "@every 10m")

	w.warm()
	if got := calls.Load(); got != 6 {
		t.Errorf("upstream calls after warm = %d, want 6", got)
	}

	// A second warm within the TTL serves from cache.
	w.warm()
	if got := calls.Load(); got != 6 {
		t.Errorf("upstream calls after second warm = %d, want 6", got)
	}
}

func TestWarmerStartStop(t *testing.T) {
	w, calls := newTestWarmer(t, "@every 10m")

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Start triggers an immediate warm in the background.
	deadline := time.After(5 * time.Second)
	for calls.Load() < 6 {
		select {
		case <-deadline:
			t.Fatalf("initial warm did not complete, calls = %d", calls.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return")
	}
}

func TestWarmerInvalidSchedule(t *testing.T) {
	w, _ := newTestWarmer(t, "not a schedule")

	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start() with invalid schedule should fail")
	}
}

func TestWarmerSurvivesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	defer func() { _ = backend.Close() }()

	content := cache.NewContentCache(backend, api.New(srv.URL), time.Hour)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	w := New(content, "@every 10m", logger)

	// Must not panic; failures only log.
	w.warm()

	if _, err := content.Services(context.Background()); err == nil {
		t.Error("expected error reading through failing upstream")
	}
}
