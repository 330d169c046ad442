// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// originalFieldPrefix marks hidden form fields carrying the values the form
// was rendered with, used to compute the changed-keys diff on save.
const originalFieldPrefix = "__original_"

// SettingsHandler handles site settings routes (admin only).
type SettingsHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *SettingsHandler {
	return &SettingsHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// SettingsGroup is one category of settings for display.
type SettingsGroup struct {
	Category string
	Settings []model.Setting
}

// SettingsData holds data for the settings template.
type SettingsData struct {
	Groups []SettingsGroup
}

// List handles GET /admin/settings - settings grouped by category.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.client.AllSettings(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading settings")
		return
	}

	h.renderSettings(w, r, groupSettings(settings))
}

// Update handles POST /admin/settings. Only keys whose submitted value
// differs from the rendered original go upstream, in a single bulk request.
// A rejected save reports one error and leaves the form values intact.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	changed := make(map[string]string)
	for key, values := range r.Form {
		if strings.HasPrefix(key, originalFieldPrefix) || len(values) == 0 {
			continue
		}
		if _, tracked := r.Form[originalFieldPrefix+key]; !tracked {
			continue // not a setting field (csrf token etc.)
		}
		if values[0] != r.Form.Get(originalFieldPrefix+key) {
			changed[key] = values[0]
		}
	}

	if len(changed) == 0 {
		flashAndRedirect(w, r, h.renderer, redirectAdminSettings, "No changes to save", "info")
		return
	}

	if err := h.client.UpdateSettings(r.Context(), changed); err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminSettings, "")
			return
		}
		// Re-render with the submitted values so nothing typed is lost.
		settings, loadErr := h.client.AllSettings(r.Context())
		if loadErr != nil {
			handleUpstreamError(w, r, h.renderer, h.credentials, loadErr, redirectAdmin, "Error loading settings")
			return
		}
		for i := range settings {
			if v, ok := r.Form[settings[i].Key]; ok && len(v) > 0 {
				settings[i].Value = v[0]
			}
		}
		h.renderer.SetFlash(r, "Settings could not be saved", "error")
		h.renderSettings(w, r, groupSettings(settings))
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Settings saved")
}

// groupSettings buckets settings by display category, categories and keys
// both in stable sorted order.
func groupSettings(settings []model.Setting) SettingsData {
	byCategory := make(map[string][]model.Setting)
	for _, s := range settings {
		cat := s.DisplayCategory()
		byCategory[cat] = append(byCategory[cat], s)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	data := SettingsData{}
	for _, cat := range categories {
		group := byCategory[cat]
		sort.Slice(group, func(i, j int) bool { return group[i].Key < group[j].Key })
		data.Groups = append(data.Groups, SettingsGroup{Category: cat, Settings: group})
	}
	return data
}

func (h *SettingsHandler) renderSettings(w http.ResponseWriter, r *http.Request, data SettingsData) {
	if err := h.renderer.Render(w, r, "admin/settings", render.TemplateData{
		Title: "Settings",
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render settings", "error", err)
	}
}
