// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *AdminHandler {
	return &AdminHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// DashboardData holds data for the dashboard template.
type DashboardData struct {
	Stats         model.DashboardTotals
	LeadsByStatus map[string]int64
	MonthlyLeads  []model.MonthlyLeadCount
	Activity      []model.ActivityItem
	Unavailable   bool
}

// Dashboard handles GET /admin - counters, status breakdown, monthly trend
// and the recent activity feed.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{}

	stats, err := h.client.Dashboard(r.Context())
	if err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "")
			return
		}
		// The dashboard is the admin landing page; render it degraded
		// instead of redirecting somewhere else.
		slog.Error("dashboard load failed", "error", err)
		data.Unavailable = true
	} else {
		data.Stats = stats.Stats
		data.LeadsByStatus = stats.LeadsByStatus
		data.MonthlyLeads = stats.MonthlyLeads
		data.Activity = stats.RecentActivity
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
