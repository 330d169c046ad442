// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/cache"
	"github.com/traamakrishna3012/financeclinics/internal/metrics"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
)

// BlogPerPage is the number of posts per public blog page.
const BlogPerPage = 6

// fallbackServices is shown on the home and services pages when the
// upstream API is unreachable, so the public site never renders empty.
var fallbackServices = []model.Service{
	{
		Title:            "Revenue Cycle Review",
		Slug:             "revenue-cycle-review",
		ShortDescription: "Identify billing leaks and denied-claim patterns across your practice.",
		Icon:             "chart-line",
	},
	{
		Title:            "Financial Health Check",
		Slug:             "financial-health-check",
		ShortDescription: "A full assessment of your clinic's cash flow, costs, and payer mix.",
		Icon:             "stethoscope",
	},
	{
		Title:            "Compliance Advisory",
		Slug:             "compliance-advisory",
		ShortDescription: "Stay ahead of healthcare billing regulations and audit exposure.",
		Icon:             "shield-check",
	},
}

// FrontendHandler serves the public marketing site.
type FrontendHandler struct {
	client   *api.Client
	content  *cache.ContentCache
	renderer *render.Renderer
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(client *api.Client, content *cache.ContentCache, renderer *render.Renderer) *FrontendHandler {
	return &FrontendHandler{
		client:   client,
		content:  content,
		renderer: renderer,
	}
}

// HomeData holds data for the home template.
type HomeData struct {
	Services    []model.Service
	RecentPosts []model.BlogPost
	Fallback    bool
}

// Home handles GET / - featured services and recent posts, with static
// fallback content when the API is unreachable.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{}

	services, err := h.content.FeaturedServices(r.Context())
	if err != nil {
		slog.Warn("home: featured services unavailable, using fallback", "error", err)
		data.Services = fallbackServices
		data.Fallback = true
	} else {
		data.Services = services
	}

	if posts, err := h.content.RecentPosts(r.Context(), 3); err == nil {
		data.RecentPosts = posts
	}

	h.render(w, r, "frontend/home", "FinanceClinics", data)
}

// Page handles GET /{slug} - a published page such as about or privacy.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.content.Page(r.Context(), slug)
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load page", "error", err, "slug", slug)
		return
	}

	h.render(w, r, "frontend/page", page.Title, page)
}

// ServicesData holds data for the services list template.
type ServicesData struct {
	Services []model.Service
	Fallback bool
}

// Services handles GET /services - the service offerings list.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	data := ServicesData{}

	services, err := h.content.Services(r.Context())
	if err != nil {
		slog.Warn("services list unavailable, using fallback", "error", err)
		data.Services = fallbackServices
		data.Fallback = true
	} else {
		data.Services = services
	}

	h.render(w, r, "frontend/services", "Our Services", data)
}

// Service handles GET /services/{slug} - a single service detail page.
func (h *FrontendHandler) Service(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.content.Service(r.Context(), slug)
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load service", "error", err, "slug", slug)
		return
	}

	h.render(w, r, "frontend/service", svc.Title, svc)
}

// BlogData holds data for the blog list template.
type BlogData struct {
	Posts      []model.BlogPost
	Categories []string
	Category   string
	Page       int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Blog handles GET /blog - paginated post listing with category filter.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)
	category := r.URL.Query().Get("category")

	listing, err := h.content.BlogPage(r.Context(), page, BlogPerPage, category)
	if err != nil {
		logAndInternalError(w, "failed to load blog listing", "error", err, "page", page)
		return
	}

	data := BlogData{
		Posts:      listing.Posts,
		Category:   category,
		Page:       listing.CurrentPage,
		TotalPages: listing.Pages,
		HasNext:    listing.HasNext,
		HasPrev:    listing.HasPrev,
	}
	if categories, err := h.content.Categories(r.Context()); err == nil {
		data.Categories = categories
	}

	h.render(w, r, "frontend/blog", "Blog", data)
}

// Post handles GET /blog/{slug} - a single blog post.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.content.Post(r.Context(), slug)
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load post", "error", err, "slug", slug)
		return
	}

	h.render(w, r, "frontend/post", post.Title, post)
}

// ContactFormData holds data for the contact template.
type ContactFormData struct {
	Services   []model.Service
	Errors     map[string]string
	FormValues model.ContactForm
}

// ContactForm handles GET /contact - displays the contact form.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	data := ContactFormData{
		Errors: make(map[string]string),
	}
	if services, err := h.content.Services(r.Context()); err == nil {
		data.Services = services
	}

	h.render(w, r, "frontend/contact", "Contact Us", data)
}

// Contact handles POST /contact - validates locally, then submits the lead.
// A failed submission re-renders the form with the entered values intact.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	form := model.ContactForm{
		Name:                 strings.TrimSpace(r.FormValue("name")),
		Email:                strings.TrimSpace(r.FormValue("email")),
		Phone:                strings.TrimSpace(r.FormValue("phone")),
		Organization:         strings.TrimSpace(r.FormValue("organization")),
		Message:              strings.TrimSpace(r.FormValue("message")),
		PreferredContactTime: r.FormValue("preferred_contact_time"),
		ServiceInterest:      r.FormValue("service_interest"),
		Source:               "website",
		PrivacyAccepted:      r.FormValue("privacy_accepted") == "on",
	}

	data := ContactFormData{
		Errors:     ValidateContactForm(form),
		FormValues: form,
	}
	if len(data.Errors) > 0 {
		if services, err := h.content.Services(r.Context()); err == nil {
			data.Services = services
		}
		h.render(w, r, "frontend/contact", "Contact Us", data)
		return
	}

	if err := h.client.SubmitContact(r.Context(), form); err != nil {
		slog.Error("contact submission failed", "error", err)
		data.Errors["form"] = "We could not send your message. Please try again shortly."
		h.render(w, r, "frontend/contact", "Contact Us", data)
		return
	}

	metrics.LeadsSubmitted.Inc()
	slog.Info("lead submitted", "service_interest", form.ServiceInterest)
	flashSuccess(w, r, h.renderer, RouteContact, "Thank you! We will be in touch within one business day.")
}

// NotFound renders the public 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	_ = h.renderer.Render(w, r, "frontend/404", render.TemplateData{Title: "Page Not Found"})
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	td := render.TemplateData{
		Title: title,
		Data:  data,
	}
	if settings, err := h.content.Settings(r.Context()); err == nil {
		td.Settings = settings
	}
	if err := h.renderer.Render(w, r, tmpl, td); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
