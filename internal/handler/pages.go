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

// PagesHandler handles page management routes.
type PagesHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *PagesHandler {
	return &PagesHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// PagesListData holds data for the pages list template.
type PagesListData struct {
	Pages []model.Page
}

// List handles GET /admin/pages - all pages including drafts.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.client.AdminListPages(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading pages")
		return
	}

	h.render(w, r, "admin/pages_list", "Pages", PagesListData{Pages: pages})
}

// PageFormData holds data for the page form template.
type PageFormData struct {
	Page   *model.Page
	Errors map[string]string
	Form   api.PageInput
	IsEdit bool
}

// NewForm handles GET /admin/pages/new.
func (h *PagesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/pages_form", "New Page", PageFormData{
		Errors: make(map[string]string),
	})
}

// Create handles POST /admin/pages.
func (h *PagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPagesNew) {
		return
	}

	input, errs := h.pageInputFromForm(r)
	if len(errs) > 0 {
		h.render(w, r, "admin/pages_form", "New Page", PageFormData{Errors: errs, Form: input})
		return
	}

	if _, err := h.client.CreatePage(r.Context(), input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPagesNew, "Error creating page")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPages, "Page created")
}

// EditForm handles GET /admin/pages/{id}.
func (h *PagesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPages)
	if !ok {
		return
	}

	page, err := h.client.AdminGetPage(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminPages, "Page not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPages, "Error loading page")
		return
	}

	h.render(w, r, "admin/pages_form", "Edit Page", PageFormData{
		Page:   &page,
		Errors: make(map[string]string),
		Form: api.PageInput{
			Title:           page.Title,
			Slug:            page.Slug,
			Content:         page.Content,
			MetaTitle:       page.MetaTitle,
			MetaDescription: page.MetaDescription,
			MetaKeywords:    page.MetaKeywords,
			FeaturedImage:   page.FeaturedImage,
			IsPublished:     page.IsPublished,
			SortOrder:       page.SortOrder,
			Template:        page.Template,
		},
		IsEdit: true,
	})
}

// Update handles POST|PUT /admin/pages/{id}. A failed update re-renders the
// form with the entered values intact.
func (h *PagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPages)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPages) {
		return
	}

	input, errs := h.pageInputFromForm(r)
	data := PageFormData{Errors: errs, Form: input, IsEdit: true}
	if len(errs) > 0 {
		h.render(w, r, "admin/pages_form", "Edit Page", data)
		return
	}

	if _, err := h.client.UpdatePage(r.Context(), id, input); err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPages, "")
			return
		}
		data.Errors["form"] = "Error saving page"
		h.render(w, r, "admin/pages_form", "Edit Page", data)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPages, "Page updated")
}

// Delete handles POST|DELETE /admin/pages/{id}/delete.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPages)
	if !ok {
		return
	}

	if err := h.client.DeletePage(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPages, "Error deleting page")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPages, "Page deleted")
}

// pageInputFromForm builds a PageInput from the submitted form, generating
// the slug from the title when left blank.
func (h *PagesHandler) pageInputFromForm(r *http.Request) (api.PageInput, map[string]string) {
	input := api.PageInput{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Slug:            SlugFromForm(r.FormValue("slug"), r.FormValue("title")),
		Content:         r.FormValue("content"),
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		MetaKeywords:    strings.TrimSpace(r.FormValue("meta_keywords")),
		FeaturedImage:   strings.TrimSpace(r.FormValue("featured_image")),
		IsPublished:     r.FormValue("is_published") == "on",
		Template:        r.FormValue("template"),
	}
	if sortOrder, err := strconv.Atoi(r.FormValue("sort_order")); err == nil {
		input.SortOrder = sortOrder
	}

	errs := make(map[string]string)
	if input.Title == "" {
		errs["title"] = "Title is required"
	}
	if msg := ValidateSlugFormat(input.Slug); msg != "" {
		errs["slug"] = msg
	}
	if input.Content == "" {
		errs["content"] = "Content is required"
	}
	return input, errs
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
