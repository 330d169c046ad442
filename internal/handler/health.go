// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/api"
)

// HealthHandler handles health check requests. Readiness covers both the
// local session store and the upstream API this frontend depends on.
type HealthHandler struct {
	db        *sql.DB
	client    *api.Client
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, client *api.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		client:    client,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthStatus represents the overall health response.
type HealthStatus struct {
	Status string           `json:"status"`
	Uptime string           `json:"uptime"`
	Checks map[string]Check `json:"checks"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sessionCheck := h.checkSessionStore()
	upstreamCheck := h.checkUpstream(r.Context())

	overall := "healthy"
	code := http.StatusOK
	// The site stays up on cached content when only the upstream is down.
	switch {
	case sessionCheck.Status != "healthy":
		overall = "unhealthy"
		code = http.StatusServiceUnavailable
	case upstreamCheck.Status != "healthy":
		overall = "degraded"
	}

	w.Header().Set(HeaderContentType, "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(HealthStatus{
		Status: overall,
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"sessions": sessionCheck,
			"upstream": upstreamCheck,
		},
	})
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - ready to accept traffic once the
// session store responds.
func (h *HealthHandler) Readiness(w http.ResponseWriter, _ *http.Request) {
	sessionCheck := h.checkSessionStore()

	w.Header().Set(HeaderContentType, "application/json")
	if sessionCheck.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "not_ready",
		"message": sessionCheck.Message,
	})
}

// checkSessionStore verifies the session database responds.
func (h *HealthHandler) checkSessionStore() Check {
	start := time.Now()
	err := h.db.Ping()
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}

// checkUpstream probes the public settings endpoint of the content API.
func (h *HealthHandler) checkUpstream(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := h.client.PublicSettings(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Reachable", Latency: latency.String()}
}
