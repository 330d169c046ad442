// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin interface. All business data lives behind the upstream API; handlers
// translate between HTML forms and API calls.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/session"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST/PUT/DELETE redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "error")
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "success")
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// sessionExpiredMessage is shown when an expired token forces a re-login.
const sessionExpiredMessage = "Your session has expired. Please log in again."

// isAdminPath reports whether the path belongs to the admin area but is not
// the login screen itself.
func isAdminPath(path string) bool {
	return strings.HasPrefix(path, redirectAdmin) && path != redirectAdminLogin
}

// handleUpstreamError converts an API error into a user-facing response.
//
// A 401 on an admin path means the stored token went stale: both credential
// keys are cleared together and the user is sent back to the login screen.
// Only this helper and the auth handlers touch the stored credentials; every
// other failure becomes a flash on redirectURL with the state left as it was.
func handleUpstreamError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, credentials session.Store, err error, redirectURL, message string) {
	if api.IsUnauthorized(err) && isAdminPath(r.URL.Path) {
		credentials.Clear(r.Context())
		slog.Info("stale token cleared after upstream 401", "path", r.URL.Path)
		flashError(w, r, renderer, redirectAdminLogin, sessionExpiredMessage)
		return
	}

	slog.ErrorContext(r.Context(), "upstream request failed",
		"error", err,
		"status", api.StatusOf(err),
		"method", r.Method,
	)
	flashError(w, r, renderer, redirectURL, message)
}

// serveBlob writes a binary download (CSV/XLSX/DOCX/PDF export) to the client.
func serveBlob(w http.ResponseWriter, blob *api.Blob) {
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set(HeaderContentType, contentType)
	if blob.Filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+blob.Filename+`"`)
	}
	_, _ = w.Write(blob.Data)
}
