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

// ValidRoles contains all assignable user roles.
var ValidRoles = []string{model.RoleAdmin, model.RoleViewer}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}

// UsersHandler handles user management routes (admin only).
type UsersHandler struct {
	client      *api.Client
	renderer    *render.Renderer
	credentials session.Store
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(client *api.Client, renderer *render.Renderer, credentials session.Store) *UsersHandler {
	return &UsersHandler{
		client:      client,
		renderer:    renderer,
		credentials: credentials,
	}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users         []model.User
	CurrentUserID int64
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.client.ListUsers(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdmin, "Error loading users")
		return
	}

	h.render(w, r, "admin/users_list", "Users", UsersListData{
		Users:         users,
		CurrentUserID: middleware.GetUserID(r),
	})
}

// UserFormData holds data for the user form template.
type UserFormData struct {
	User   *model.User
	Roles  []string
	Errors map[string]string
	Form   api.UserInput
	IsEdit bool
}

// NewForm handles GET /admin/users/new.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/users_form", "New User", UserFormData{
		Roles:  ValidRoles,
		Errors: make(map[string]string),
	})
}

// Create handles POST /admin/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsersNew) {
		return
	}

	input, errs := h.userInputFromForm(r, false)
	if len(errs) > 0 {
		h.render(w, r, "admin/users_form", "New User", UserFormData{
			Roles: ValidRoles, Errors: errs, Form: input,
		})
		return
	}

	if _, err := h.client.CreateUser(r.Context(), input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminUsersNew, "Error creating user")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User created")
}

// EditForm handles GET /admin/users/{id}.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminUsers)
	if !ok {
		return
	}

	// The upstream API has no single-user read; find it in the listing.
	users, err := h.client.ListUsers(r.Context())
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminUsers, "Error loading user")
		return
	}
	var user *model.User
	for i := range users {
		if users[i].ID == id {
			user = &users[i]
			break
		}
	}
	if user == nil {
		flashError(w, r, h.renderer, redirectAdminUsers, "User not found")
		return
	}

	h.render(w, r, "admin/users_form", "Edit User", UserFormData{
		User:   user,
		Roles:  ValidRoles,
		Errors: make(map[string]string),
		Form: api.UserInput{
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			IsActive: user.IsActive,
		},
		IsEdit: true,
	})
}

// Update handles POST|PUT /admin/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminUsers)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	input, errs := h.userInputFromForm(r, true)
	if len(errs) > 0 {
		h.render(w, r, "admin/users_form", "Edit User", UserFormData{
			Roles: ValidRoles, Errors: errs, Form: input, IsEdit: true,
		})
		return
	}

	if _, err := h.client.UpdateUser(r.Context(), id, input); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminUsers, "Error updating user")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User updated")
}

// Delete handles POST|DELETE /admin/users/{id}/delete. Self-deletion is
// rejected so an admin cannot lock themselves out.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminUsers)
	if !ok {
		return
	}

	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, redirectAdminUsers, "You cannot delete your own account")
		return
	}

	if err := h.client.DeleteUser(r.Context(), id); err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminUsers, "Error deleting user")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User deleted")
}

// Approve handles POST /admin/users/{id}/approve - activates a pending signup.
func (h *UsersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminUsers)
	if !ok {
		return
	}

	user, err := h.client.ApproveUser(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, h.renderer, h.credentials, err, redirectAdminUsers, "Error approving user")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Approved "+user.Email)
}

// userInputFromForm builds a UserInput from the submitted form. On edit the
// password is optional and left blank to keep the current one.
func (h *UsersHandler) userInputFromForm(r *http.Request, isEdit bool) (api.UserInput, map[string]string) {
	input := api.UserInput{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
		IsActive: r.FormValue("is_active") == "on",
	}

	errs := make(map[string]string)
	if input.Name == "" {
		errs["name"] = "Name is required"
	} else if len(input.Name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if msg := ValidateEmail(input.Email); msg != "" {
		errs["email"] = msg
	}
	if input.Password == "" {
		if !isEdit {
			errs["password"] = "Password is required"
		}
	} else if len(input.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	} else if input.Password != r.FormValue("password_confirm") {
		errs["password_confirm"] = "Passwords do not match"
	}
	if input.Role == "" {
		errs["role"] = "Role is required"
	} else if !isValidRole(input.Role) {
		errs["role"] = "Invalid role"
	}
	return input, errs
}

func (h *UsersHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}
