// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// PostsPerPage is the number of posts per admin list page.
const PostsPerPage = 20

// BlogHandler handles blog post management routes.
type BlogHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *BlogHandler {
	return &BlogHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// PostsListData holds data for the posts list template.
type PostsListData struct {
	Posts      []model.BlogPost
	Pagination AdminPagination
}

// List handles GET /admin/posts - paginated post listing including drafts.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePageParam(r)

	listing, err := h.client.AdminListPosts(r.Context(), page, PostsPerPage)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading posts")
		return
	}

	h.render(w, r, "admin/posts_list", "Blog Posts", PostsListData{
		Posts: listing.Posts,
		Pagination: BuildAdminPagination(listing.CurrentPage, listing.Pages, listing.Total,
			PostsPerPage, redirectAdminPosts, r.URL.Query()),
	})
}

// PostFormData holds data for the post form template.
type PostFormData struct {
	Post       *model.BlogPost
	Categories []string
	Errors     map[string]string
	Form       api.BlogPostInput
	IsEdit     bool
}

// NewForm handles GET /admin/posts/new.
func (h *BlogHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := PostFormData{Errors: make(map[string]string)}
	if categories, err := h.client.BlogCategories(r.Context()); err == nil {
		data.Categories = categories
	}
	h.render(w, r, "admin/posts_form", "New Post", data)
}

// Create handles POST /admin/posts.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPostsNew) {
		return
	}

	input, errs := h.postInputFromForm(r)
	if len(errs) > 0 {
		h.render(w, r, "admin/posts_form", "New Post", PostFormData{Errors: errs, Form: input})
		return
	}

	if _, err := h.client.CreatePost(r.Context(), input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPostsNew, "Error creating post")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post created")
}

// EditForm handles GET /admin/posts/{id}.
func (h *BlogHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPosts)
	if !ok {
		return
	}

	post, err := h.client.AdminGetPost(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminPosts, "Post not found")
			return
		}
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPosts, "Error loading post")
		return
	}

	data := PostFormData{
		Post:   &post,
		Errors: make(map[string]string),
		Form: api.BlogPostInput{
			Title:           post.Title,
			Slug:            post.Slug,
			Excerpt:         post.Excerpt,
			Content:         post.Content,
			FeaturedImage:   post.FeaturedImage,
			Category:        post.Category,
			Tags:            post.Tags,
			MetaTitle:       post.MetaTitle,
			MetaDescription: post.MetaDescription,
			IsPublished:     post.IsPublished,
		},
		IsEdit: true,
	}
	if categories, err := h.client.BlogCategories(r.Context()); err == nil {
		data.Categories = categories
	}

	h.render(w, r, "admin/posts_form", "Edit Post", data)
}

// Update handles POST|PUT /admin/posts/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPosts)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPosts) {
		return
	}

	input, errs := h.postInputFromForm(r)
	data := PostFormData{Errors: errs, Form: input, IsEdit: true}
	if len(errs) > 0 {
		h.render(w, r, "admin/posts_form", "Edit Post", data)
		return
	}

	if _, err := h.client.UpdatePost(r.Context(), id, input); err != nil {
		if api.IsUnauthorized(err) {
			handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPosts, "")
			return
		}
		data.Errors["form"] = "Error saving post"
		h.render(w, r, "admin/posts_form", "Edit Post", data)
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post updated")
}

// Delete handles POST|DELETE /admin/posts/{id}/delete.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminPosts)
	if !ok {
		return
	}

	if err := h.client.DeletePost(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminPosts, "Error deleting post")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Post deleted")
}

// postInputFromForm builds a BlogPostInput from the submitted form. Tags are
// comma separated; the slug derives from the title when left blank.
func (h *BlogHandler) postInputFromForm(r *http.Request) (api.BlogPostInput, map[string]string) {
	input := api.BlogPostInput{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Slug:            SlugFromForm(r.FormValue("slug"), r.FormValue("title")),
		Excerpt:         strings.TrimSpace(r.FormValue("excerpt")),
		Content:         r.FormValue("content"),
		FeaturedImage:   strings.TrimSpace(r.FormValue("featured_image")),
		Category:        strings.TrimSpace(r.FormValue("category")),
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		IsPublished:     r.FormValue("is_published") == "on",
	}
	for _, tag := range strings.Split(r.FormValue("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			input.Tags = append(input.Tags, tag)
		}
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

func (h *BlogHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
