// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

func adminUser() model.User {
	return model.User{ID: 1, Name: "Root Admin", Email: "admin@financeclinics.example", Role: model.RoleAdmin}
}

func TestUsersDeleteRejectsSelf(t *testing.T) {
	var deletes int
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes++
		}
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	r := asUser(withID(postForm("/admin/users/1/delete", nil), "1"), adminUser())
	h.Delete(w, r)

	if deletes != 0 {
		t.Errorf("upstream DELETEs = %d, self-deletion must be rejected locally", deletes)
	}
	if loc := w.Header().Get("Location"); loc != redirectAdminUsers {
		t.Errorf("Location = %q", loc)
	}
}

func TestUsersDeleteOtherUser(t *testing.T) {
	var deleted string
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = r.URL.Path
		}
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	r := asUser(withID(postForm("/admin/users/2/delete", nil), "2"), adminUser())
	h.Delete(w, r)

	if deleted != "/admin/users/2" {
		t.Errorf("deleted path = %q", deleted)
	}
}

func TestUsersApprove(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/3/approve" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"user":{"id":3,"name":"Pending","email":"pending@example.com","is_active":true}}`))
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	r := asUser(withID(postForm("/admin/users/3/approve", nil), "3"), adminUser())
	h.Approve(w, r)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != redirectAdminUsers {
		t.Errorf("Location = %q", loc)
	}
}

func TestUsersCreateValidation(t *testing.T) {
	var posts int
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
		}
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing password", url.Values{
			"name": {"New User"}, "email": {"new@example.com"}, "role": {"viewer"},
		}},
		{"invalid role", url.Values{
			"name": {"New User"}, "email": {"new@example.com"},
			"password": {"longenough"}, "password_confirm": {"longenough"}, "role": {"superuser"},
		}},
		{"password mismatch", url.Values{
			"name": {"New User"}, "email": {"new@example.com"},
			"password": {"longenough"}, "password_confirm": {"different1"}, "role": {"viewer"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, asUser(postForm("/admin/users", tt.form), adminUser()))

			if posts != 0 {
				t.Errorf("upstream POSTs = %d, want 0", posts)
			}
			if !strings.Contains(w.Body.String(), "admin/users_form") {
				t.Error("expected the user form re-rendered")
			}
		})
	}
}

func TestUsersEditFormFindsUserInListing(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[
			{"id":1,"name":"Root Admin","email":"admin@financeclinics.example","role":"admin"},
			{"id":4,"name":"Viewer","email":"viewer@example.com","role":"viewer"}
		]}`))
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	r := asUser(withID(httptest.NewRequest("GET", "/admin/users/4", nil), "4"), adminUser())
	h.EditForm(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "admin/users_form") {
		t.Error("expected the user form rendered")
	}
}

func TestUsersEditFormUnknownID(t *testing.T) {
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"id":1,"name":"Root Admin","email":"admin@financeclinics.example"}]}`))
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	w := httptest.NewRecorder()
	r := asUser(withID(httptest.NewRequest("GET", "/admin/users/42", nil), "42"), adminUser())
	h.EditForm(w, r)

	if loc := w.Header().Get("Location"); loc != redirectAdminUsers {
		t.Errorf("Location = %q, want back to the listing", loc)
	}
}

func TestUsersUpdateAllowsBlankPassword(t *testing.T) {
	var gotBody string
	client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			buf, _ := io.ReadAll(r.Body)
			gotBody = string(buf)
		}
		w.Write([]byte(`{"user":{"id":4,"name":"Viewer","email":"viewer@example.com","role":"viewer"}}`))
	})

	h := NewUsersHandler(client, newTestRenderer(t), &memCredentials{token: "t"})

	form := url.Values{
		"name": {"Viewer"}, "email": {"viewer@example.com"}, "role": {"viewer"}, "is_active": {"on"},
	}
	w := httptest.NewRecorder()
	h.Update(w, asUser(withID(postForm("/admin/users/4", form), "4"), adminUser()))

	if gotBody == "" {
		t.Fatal("expected an upstream PUT")
	}
	// Blank password means keep the current one; it must not go on the wire.
	if strings.Contains(gotBody, "password") {
		t.Errorf("unexpected password in body: %s", gotBody)
	}
	if loc := w.Header().Get("Location"); loc != redirectAdminUsers {
		t.Errorf("Location = %q", loc)
	}
}
