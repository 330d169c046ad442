// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/model"
	"github.com/traamakrishna3012/financeclinics/internal/render"
)

// memCredentials is an in-memory session.Store for handler tests.
type memCredentials struct {
	token   string
	user    model.User
	hasUser bool
	cleared bool
}

func (m *memCredentials) Token(context.Context) string { return m.token }

func (m *memCredentials) User(context.Context) (model.User, bool) { return m.user, m.hasUser }

func (m *memCredentials) SetSession(_ context.Context, token string, user model.User) {
	m.token = token
	m.user = user
	m.hasUser = true
}

func (m *memCredentials) SetUser(_ context.Context, user model.User) {
	m.user = user
	m.hasUser = true
}

func (m *memCredentials) Clear(context.Context) {
	m.token = ""
	m.user = model.User{}
	m.hasUser = false
	m.cleared = true
}

// screenTemplates enumerates every screen the handlers render. Tests only
// need the template set to resolve, so each screen just echoes its name.
var screenTemplates = map[string][]string{
	"frontend": {"home", "page", "services", "service", "blog", "post", "contact", "404"},
	"auth":     {"login", "signup", "change_password"},
	"admin": {
		"dashboard", "leads_list", "leads_detail", "pages_list", "pages_form",
		"services_list", "services_form", "posts_list", "posts_form",
		"users_list", "users_form", "settings", "mis_list", "mis_form", "mis_rows",
	},
}

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}{{template "admin-content" .}}{{end}}`),
		},
	}
	for _, name := range screenTemplates["frontend"] {
		fsys["frontend/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "content"}}frontend/` + name + ` {{.Title}}{{end}}`),
		}
	}
	for _, name := range screenTemplates["auth"] {
		fsys["auth/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "content"}}auth/` + name + ` {{.Title}}{{end}}`),
		}
	}
	for _, name := range screenTemplates["admin"] {
		fsys["admin/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "admin-content"}}admin/` + name + ` {{.Title}}{{end}}`),
		}
	}

	r, err := render.New(render.Config{TemplatesFS: fsys})
	if err != nil {
		t.Fatalf("render.New() error: %v", err)
	}
	return r
}

// newUpstream starts a fake API server and returns a client wired to it.
func newUpstream(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL)
}

// asUser attaches an authenticated user to the request context.
func asUser(r *http.Request, user model.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
	return r.WithContext(ctx)
}
