// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"
)

func newHealthDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening session db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHealthAllHealthy(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"settings":{}}`))
	})
	h := NewHealthHandler(newHealthDB(t), client)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("overall = %q, want healthy", status.Status)
	}
	if status.Checks["sessions"].Status != "healthy" || status.Checks["upstream"].Status != "healthy" {
		t.Errorf("checks = %+v", status.Checks)
	}
}

func TestHealthUpstreamDownIsDegraded(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	h := NewHealthHandler(newHealthDB(t), client)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	// Cached content keeps the site serving, so this is degraded, not down.
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "degraded" {
		t.Errorf("overall = %q, want degraded", status.Status)
	}
}

func TestHealthSessionStoreDownIsUnhealthy(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"settings":{}}`))
	})
	db := newHealthDB(t)
	db.Close()
	h := NewHealthHandler(db, client)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestReadinessIgnoresUpstream(t *testing.T) {
	var upstreamCalls int
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	})
	h := NewHealthHandler(newHealthDB(t), client)

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest("GET", "/health/ready", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if upstreamCalls != 0 {
		t.Errorf("readiness probed the upstream %d times, want 0", upstreamCalls)
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(newHealthDB(t), newUpstream(t, func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest("GET", "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
