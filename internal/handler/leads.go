// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/metrics"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// LeadsPerPage is the number of leads per admin list page.
const LeadsPerPage = 20

// LeadsHandler handles lead management routes.
type LeadsHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewLeadsHandler creates a new LeadsHandler.
func NewLeadsHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *LeadsHandler {
	return &LeadsHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// LeadsListData holds data for the leads list template.
type LeadsListData struct {
	Leads      []model.Lead
	Stats      model.LeadStats
	Status     string
	Statuses   []string
	Pagination AdminPagination
}

// List handles GET /admin/leads - paginated lead listing with status filter
// and the stats summary.
func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	status := r.URL.Query().Get("status")
	if status != "" && !model.IsValidLeadStatus(status) {
		status = ""
	}

	listing, err := h.client.AdminListLeads(r.Context(), page, LeadsPerPage, status)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading leads")
		return
	}

	data := LeadsListData{
		Leads:    listing.Leads,
		Status:   status,
		Statuses: model.LeadStatuses,
		Pagination: BuildAdminPagination(listing.CurrentPage, listing.Pages, listing.Total,
			LeadsPerPage, redirectAdminLeads, r.URL.Query()),
	}
	if stats, err := h.client.LeadStats(r.Context()); err == nil {
		data.Stats = stats
	}

	h.render(w, r, "admin/leads_list", "Leads", data)
}

// LeadDetailData holds data for the lead detail template.
type LeadDetailData struct {
	Lead     model.Lead
	Statuses []string
}

// Detail handles GET /admin/leads/{id} - the lead detail and edit screen.
func (h *LeadsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminLeads)
	if !ok {
		return
	}

	lead, err := h.client.AdminGetLead(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminLeads, "Lead not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminLeads, "Error loading lead")
		return
	}

	h.render(w, r, "admin/leads_detail", "Lead: "+lead.Name, LeadDetailData{
		Lead:     lead,
		Statuses: model.LeadStatuses,
	})
}

// Update handles POST /admin/leads/{id} - status and notes changes.
func (h *LeadsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminLeads)
	if !ok {
		return
	}
	detailURL := fmt.Sprintf(redirectAdminLeadsID, id)

	if !parseFormOrRedirect(w, r, h.renderer, detailURL) {
		return
	}

	update := api.LeadUpdate{}
	if status := r.FormValue("status"); status != "" {
		if !model.IsValidLeadStatus(status) {
			flashError(w, r, h.renderer, detailURL, "Invalid status")
			return
		}
		update.Status = &status
	}
	if _, present := r.Form["notes"]; present {
		notes := strings.TrimSpace(r.FormValue("notes"))
		update.Notes = &notes
	}

	if _, err := h.client.UpdateLead(r.Context(), id, update); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, detailURL, "Error updating lead")
		return
	}

	flashSuccess(w, r, h.renderer, detailURL, "Lead updated")
}

// Delete handles POST|DELETE /admin/leads/{id}/delete.
func (h *LeadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminLeads)
	if !ok {
		return
	}

	if err := h.client.DeleteLead(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminLeads, "Error deleting lead")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminLeads, "Lead deleted")
}

// Export handles GET /admin/leads/export - downloads the CSV export,
// carrying over the list screen's status filter when one is active.
func (h *LeadsHandler) Export(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.IsValidLeadStatus(status) {
		status = ""
	}

	blob, err := h.client.ExportLeads(r.Context(), status)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminLeads, "Error exporting leads")
		return
	}

	metrics.ReportsExported.WithLabelValues("csv").Inc()
	serveBlob(w, blob)
}

func (h *LeadsHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}

// parseIDParam extracts the {id} route parameter, redirecting with a flash
// on garbage input.
func parseIDParam(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		flashError(w, r, renderer, redirectURL, "Invalid ID")
		return 0, false
	}
	return id, true
}
