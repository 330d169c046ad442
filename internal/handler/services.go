// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// ServicesHandler handles service management routes.
type ServicesHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *ServicesHandler {
	return &ServicesHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// ServicesListData holds data for the services list template.
type ServicesListData struct {
	Services []model.Service
}

// List handles GET /admin/services - all services including drafts.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.client.AdminListServices(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading services")
		return
	}

	h.render(w, r, "admin/services_list", "Services", ServicesListData{Services: services})
}

// ServiceFormData holds data for the service form template.
type ServiceFormData struct {
	Service *model.Service
	Errors  map[string]string
	Form    api.ServiceInput
	IsEdit  bool
}

// NewForm handles GET /admin/services/new.
func (h *ServicesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/services_form", "New Service", ServiceFormData{
		Errors: make(map[string]string),
	})
}

// Create handles POST /admin/services.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSvcNew) {
		return
	}

	input, errs := h.serviceInputFromForm(r)
	if len(errs) > 0 {
		h.render(w, r, "admin/services_form", "New Service", ServiceFormData{Errors: errs, Form: input})
		return
	}

	if _, err := h.client.CreateService(r.Context(), input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminSvcNew, "Error creating service")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service created")
}

// EditForm handles GET /admin/services/{id}.
func (h *ServicesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}

	svc, err := h.client.AdminGetService(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminServices, "Service not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminServices, "Error loading service")
		return
	}

	h.render(w, r, "admin/services_form", "Edit Service", ServiceFormData{
		Service: &svc,
		Errors:  make(map[string]string),
		Form: api.ServiceInput{
			Title:            svc.Title,
			Slug:             svc.Slug,
			ShortDescription: svc.ShortDescription,
			Description:      svc.Description,
			Icon:             svc.Icon,
			FeaturedImage:    svc.FeaturedImage,
			Features:         svc.Features,
			MetaTitle:        svc.MetaTitle,
			MetaDescription:  svc.MetaDescription,
			IsFeatured:       svc.IsFeatured,
			IsPublished:      svc.IsPublished,
			DisplayOrder:     svc.DisplayOrder,
		},
		IsEdit: true,
	})
}

// Update handles POST|PUT /admin/services/{id}.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}

	input, errs := h.serviceInputFromForm(r)
	data := ServiceFormData{Errors: errs, Form: input, IsEdit: true}
	if len(errs) > 0 {
		h.render(w, r, "admin/services_form", "Edit Service", data)
		return
	}

	if _, err := h.client.UpdateService(r.Context(), id, input); err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminServices, "")
			return
		}
		data.Errors["form"] = "Error saving service"
		h.render(w, r, "admin/services_form", "Edit Service", data)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service updated")
}

// Delete handles POST|DELETE /admin/services/{id}/delete.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}

	if err := h.client.DeleteService(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminServices, "Error deleting service")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service deleted")
}

// serviceInputFromForm builds a ServiceInput from the submitted form. The
// features textarea holds one feature per line.
func (h *ServicesHandler) serviceInputFromForm(r *http.Request) (api.ServiceInput, map[string]string) {
	input := api.ServiceInput{
		Title:            strings.TrimSpace(r.FormValue("title")),
		Slug:             SlugFromForm(r.FormValue("slug"), r.FormValue("title")),
		ShortDescription: strings.TrimSpace(r.FormValue("short_description")),
		Description:      r.FormValue("description"),
		Icon:             strings.TrimSpace(r.FormValue("icon")),
		FeaturedImage:    strings.TrimSpace(r.FormValue("featured_image")),
		MetaTitle:        strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription:  strings.TrimSpace(r.FormValue("meta_description")),
		IsFeatured:       r.FormValue("is_featured") == "on",
		IsPublished:      r.FormValue("is_published") == "on",
	}
	for _, line := range strings.Split(r.FormValue("features"), "\n") {
		if feature := strings.TrimSpace(line); feature != "" {
			input.Features = append(input.Features, feature)
		}
	}
	if order, err := strconv.Atoi(r.FormValue("display_order")); err == nil {
		input.DisplayOrder = order
	}

	errs := make(map[string]string)
	if input.Title == "" {
		errs["title"] = "Title is required"
	}
	if msg := ValidateSlugFormat(input.Slug); msg != "" {
		errs["slug"] = msg
	}
	if input.ShortDescription == "" {
		errs["short_description"] = "Short description is required"
	}
	return input, errs
}

func (h *ServicesHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
