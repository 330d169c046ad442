// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDashboardRenders(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/dashboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"stats":{"total_leads":42,"new_leads":5,"published_posts":12,"published_pages":4},
			"leads_by_status":{"new":5,"contacted":10},
			"monthly_leads":[{"month":"2026-07","count":9}],
			"recent_activity":[{"type":"lead","message":"New lead from Jane Smith","id":3}]
		}`))
	})

	h := NewAdminHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	h.Dashboard(w, asUser(httptest.NewRequest("GET", "/admin", nil), adminUser()))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "admin/dashboard") {
		t.Errorf("body %q does not render the dashboard", w.Body.String())
	}
}

func TestDashboardRendersDegradedOnUpstreamFailure(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	creds := &memCredentials{token: "t", hasUser: true}
	h := NewAdminHandler(client, newTestRenderer(t), creds)

	w := httptest.NewRecorder()
	h.Dashboard(w, asUser(httptest.NewRequest("GET", "/admin", nil), adminUser()))

	// The landing page renders with placeholders rather than redirecting.
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if creds.cleared {
		t.Error("a transient failure must not clear credentials")
	}
}

func TestDashboardExpiredSessionRedirectsToLogin(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})

	creds := &memCredentials{token: "stale", hasUser: true}
	h := NewAdminHandler(client, newTestRenderer(t), creds)

	w := httptest.NewRecorder()
	h.Dashboard(w, asUser(httptest.NewRequest("GET", "/admin", nil), adminUser()))

	if !creds.cleared {
		t.Error("expired session must clear credentials")
	}
	if loc := w.Header().Get("Location"); loc != redirectAdminLogin {
		t.Errorf("Location = %q, want %q", loc, redirectAdminLogin)
	}
}
