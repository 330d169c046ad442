// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/metrics"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
	"github.com/traamakrishna3012/financeclinics/internal/util"
)

// maxImportSize caps MIS import uploads at 10MB.
const maxImportSize = 10 << 20

// MISHandler handles report template routes (admin only).
type MISHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewMISHandler creates a new MISHandler.
func NewMISHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *MISHandler {
	return &MISHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// MISListData holds data for the templates list.
type MISListData struct {
	Templates []model.MISTemplate
}

// List handles GET /admin/mis.
func (h *MISHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.client.ListMISTemplates(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading report templates")
		return
	}

	h.render(w, r, "admin/mis_list", "Report Templates", MISListData{Templates: templates})
}

// MISFormData holds data for the template form with its column editor.
type MISFormData struct {
	Template *model.MISTemplate
	Errors   map[string]string
	Form     api.MISTemplateInput
	IsEdit   bool
}

// NewForm handles GET /admin/mis/new.
func (h *MISHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/mis_form", "New Report Template", MISFormData{
		Errors: make(map[string]string),
	})
}

// Create handles POST /admin/mis.
func (h *MISHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMISNew) {
		return
	}

	input, errs := h.templateInputFromForm(r)
	if len(errs) > 0 {
		h.render(w, r, "admin/mis_form", "New Report Template", MISFormData{Errors: errs, Form: input})
		return
	}

	if _, err := h.client.CreateMISTemplate(r.Context(), input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMISNew, "Error creating template")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminMIS, "Template created")
}

// EditForm handles GET /admin/mis/{id}.
func (h *MISHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}

	tmpl, err := h.client.GetMISTemplate(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminMIS, "Template not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "Error loading template")
		return
	}

	h.render(w, r, "admin/mis_form", "Edit Report Template", MISFormData{
		Template: &tmpl,
		Errors:   make(map[string]string),
		Form: api.MISTemplateInput{
			Name:    tmpl.Name,
			Columns: tmpl.Columns,
		},
		IsEdit: true,
	})
}

// Update handles POST|PUT /admin/mis/{id}.
func (h *MISHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMIS) {
		return
	}

	input, errs := h.templateInputFromForm(r)
	data := MISFormData{Errors: errs, Form: input, IsEdit: true}
	if len(errs) > 0 {
		h.render(w, r, "admin/mis_form", "Edit Report Template", data)
		return
	}

	if _, err := h.client.UpdateMISTemplate(r.Context(), id, input); err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "")
			return
		}
		data.Errors["form"] = "Error saving template"
		h.render(w, r, "admin/mis_form", "Edit Report Template", data)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminMIS, "Template updated")
}

// Delete handles POST|DELETE /admin/mis/{id}/delete.
func (h *MISHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}

	if err := h.client.DeleteMISTemplate(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "Error deleting template")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminMIS, "Template deleted")
}

// MISRowsData holds data for the row viewer.
type MISRowsData struct {
	Template model.MISTemplate
	Rows     []model.MISRow
	Formats  []string
}

// Rows handles GET /admin/mis/{id}/rows - the row viewer.
func (h *MISHandler) Rows(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}

	tmpl, err := h.client.GetMISTemplate(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminMIS, "Template not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "Error loading template")
		return
	}

	rows, err := h.client.MISRows(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "Error loading rows")
		return
	}

	h.render(w, r, "admin/mis_rows", tmpl.Name, MISRowsData{
		Template: tmpl,
		Rows:     rows,
		Formats:  model.MISExportFormats,
	})
}

// Import handles POST /admin/mis/{id}/import - uploads a data file and
// reports how many rows the server imported.
func (h *MISHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}
	rowsURL := fmt.Sprintf(redirectAdminMISID, id) + "/rows"

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		flashError(w, r, h.renderer, rowsURL, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		flashError(w, r, h.renderer, rowsURL, "Choose a file to import")
		return
	}
	defer func() { _ = file.Close() }()

	filename, err := util.SanitizeFilename(header.Filename)
	if err != nil {
		flashError(w, r, h.renderer, rowsURL, "Invalid file name")
		return
	}

	imported, err := h.client.ImportMISRows(r.Context(), id, filename, file)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, rowsURL, "Import failed")
		return
	}

	flashSuccess(w, r, h.renderer, rowsURL, fmt.Sprintf("Imported %d rows", imported))
}

// Export handles GET /admin/mis/{id}/export?format= - downloads the
// rendered report in the requested format.
func (h *MISHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminMIS)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if !isValidExportFormat(format) {
		flashError(w, r, h.renderer, fmt.Sprintf(redirectAdminMISID, id)+"/rows", "Unsupported export format")
		return
	}

	blob, err := h.client.ExportMISTemplate(r.Context(), id, format)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminMIS, "Export failed")
		return
	}

	metrics.ReportsExported.WithLabelValues(format).Inc()
	serveBlob(w, blob)
}

func isValidExportFormat(format string) bool {
	for _, f := range model.MISExportFormats {
		if format == f {
			return true
		}
	}
	return false
}

// templateInputFromForm builds a MISTemplateInput from the column editor.
// Columns arrive as parallel column_key / column_label arrays; a blank label
// falls back to the key.
func (h *MISHandler) templateInputFromForm(r *http.Request) (api.MISTemplateInput, map[string]string) {
	input := api.MISTemplateInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	keys := r.Form["column_key"]
	labels := r.Form["column_label"]
	for i, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		label := key
		if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
			label = strings.TrimSpace(labels[i])
		}
		input.Columns = append(input.Columns, model.MISColumn{Key: key, Label: label})
	}

	errs := make(map[string]string)
	if input.Name == "" {
		errs["name"] = "Name is required"
	}
	if len(input.Columns) == 0 {
		errs["columns"] = "At least one column is required"
	}
	return input, errs
}

func (h *MISHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
