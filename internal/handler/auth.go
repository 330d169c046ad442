// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// AuthHandler handles login, signup, logout and password changes.
type AuthHandler struct {
	auth       *session.Auth
	renderer   *render.Renderer
	protection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *session.Auth, renderer *render.Renderer, protection *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		renderer:   renderer,
		protection: protection,
	}
}

// AuthFormData holds data for the login and signup templates.
type AuthFormData struct {
	Next       string
	Errors     map[string]string
	FormValues map[string]string
	IsSignup   bool
}

// LoginForm handles GET /admin/login - displays the login form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.Store().User(r.Context()); ok {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, AuthFormData{
		Next:       safeNextPath(r.URL.Query().Get("next")),
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// Login handles POST /admin/login - authenticates against the upstream API.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	next := safeNextPath(r.FormValue("next"))

	data := AuthFormData{
		Next:       next,
		Errors:     make(map[string]string),
		FormValues: map[string]string{"email": email},
	}

	if msg := ValidateEmail(email); msg != "" {
		data.Errors["email"] = msg
	}
	if password == "" {
		data.Errors["password"] = "Password is required"
	}
	if len(data.Errors) > 0 {
		h.renderLogin(w, r, data)
		return
	}

	if locked, remaining := h.protection.IsAccountLocked(email); locked {
		data.Errors["form"] = fmt.Sprintf("Account temporarily locked. Try again in %s.", remaining.Round(time.Second))
		h.renderLogin(w, r, data)
		return
	}

	user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		h.protection.RecordFailedAttempt(email)
		slog.Warn("login failed", "email", email, "error", err)
		data.Errors["form"] = "Invalid email or password"
		h.renderLogin(w, r, data)
		return
	}

	h.protection.RecordSuccessfulLogin(email)
	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)

	target := redirectAdmin
	if next != "" {
		target = next
	}
	flashSuccess(w, r, h.renderer, target, "Welcome back, "+user.Name)
}

// SignupForm handles GET /admin/signup - displays the signup form.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.Store().User(r.Context()); ok {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	h.renderSignup(w, r, AuthFormData{
		IsSignup:   true,
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// Signup handles POST /admin/signup - registers a new account upstream.
// New accounts start inactive until an admin approves them.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdmin+RouteSignup) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	data := AuthFormData{
		IsSignup:   true,
		Errors:     make(map[string]string),
		FormValues: map[string]string{"name": name, "email": email},
	}

	if name == "" {
		data.Errors["name"] = "Name is required"
	} else if len(name) < 2 {
		data.Errors["name"] = "Name must be at least 2 characters"
	}
	if msg := ValidateEmail(email); msg != "" {
		data.Errors["email"] = msg
	}
	if password == "" {
		data.Errors["password"] = "Password is required"
	} else if len(password) < 8 {
		data.Errors["password"] = "Password must be at least 8 characters"
	} else if password != passwordConfirm {
		data.Errors["password_confirm"] = "Passwords do not match"
	}
	if len(data.Errors) > 0 {
		h.renderSignup(w, r, data)
		return
	}

	user, err := h.auth.Signup(r.Context(), name, email, password)
	if err != nil {
		slog.Warn("signup failed", "email", email, "error", err)
		data.Errors["form"] = "Could not create the account. The email may already be registered."
		h.renderSignup(w, r, data)
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, redirectAdmin, "Account created. An administrator must approve it before full access.")
}

// Logout handles GET|POST /admin/logout. Local state is cleared regardless
// of whether the upstream notify succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	flashSuccess(w, r, h.renderer, redirectAdminLogin, "You have been logged out")
}

// ChangePasswordForm handles GET /admin/change-password.
func (h *AuthHandler) ChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	h.renderChangePassword(w, r, AuthFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

// ChangePassword handles POST /admin/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdmin+RouteChangePassword) {
		return
	}

	current := r.FormValue("current_password")
	updated := r.FormValue("new_password")
	confirm := r.FormValue("new_password_confirm")

	data := AuthFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}

	if current == "" {
		data.Errors["current_password"] = "Current password is required"
	}
	if updated == "" {
		data.Errors["new_password"] = "New password is required"
	} else if len(updated) < 8 {
		data.Errors["new_password"] = "Password must be at least 8 characters"
	} else if updated != confirm {
		data.Errors["new_password_confirm"] = "Passwords do not match"
	}
	if len(data.Errors) > 0 {
		h.renderChangePassword(w, r, data)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), current, updated); err != nil {
		handleUpstreamError(w, r, h.renderer, h.auth.Store(), err,
			redirectAdmin+RouteChangePassword, "Password change failed. Check your current password.")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAdmin, "Password changed")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data AuthFormData) {
	h.render(w, r, "auth/login", "Log In", data)
}

func (h *AuthHandler) renderSignup(w http.ResponseWriter, r *http.Request, data AuthFormData) {
	h.render(w, r, "auth/signup", "Sign Up", data)
}

func (h *AuthHandler) renderChangePassword(w http.ResponseWriter, r *http.Request, data AuthFormData) {
	h.render(w, r, "auth/change_password", "Change Password", data)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, tmpl, title string, data AuthFormData) {
	if err := h.renderer.Render(w, r, tmpl, render.TemplateData{
		Title: title,
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render "+tmpl, "error", err)
	}
}

// safeNextPath accepts only local absolute paths for the post-login return
// trip, rejecting anything that could become an open redirect.
func safeNextPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Hostname() != "" {
		return ""
	}
	return next
}
