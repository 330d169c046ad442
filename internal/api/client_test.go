// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

func TestBearerHeaderAttachment(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
		wantSet    bool
	}{
		{"with token", "abc123", "Bearer abc123", true},
		{"empty token omits header", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			var headerSet bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				_, headerSet = r.Header["Authorization"]
				_ = json.NewEncoder(w).Encode(map[string]any{"pages": []any{}})
			}))
			defer srv.Close()

			c := New(srv.URL, WithTokenSource(TokenSourceFunc(func(context.Context) string {
				return tt.token
			})))
			if _, err := c.ListPages(context.Background()); err != nil {
				t.Fatalf("ListPages() error = %v", err)
			}
			if headerSet != tt.wantSet {
				t.Errorf("Authorization header set = %v, want %v", headerSet, tt.wantSet)
			}
			if gotHeader != tt.wantHeader {
				t.Errorf("Authorization = %q, want %q", gotHeader, tt.wantHeader)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]any{"services": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListServices(context.Background()); err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if gotID == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		contentType string
		wantMsg     string
	}{
		{"json error envelope", http.StatusBadRequest, `{"error":"email is required"}`, "application/json", "email is required"},
		{"json message field", http.StatusForbidden, `{"message":"admin only"}`, "application/json", "admin only"},
		{"plain text body", http.StatusBadGateway, "upstream timeout", "text/plain", "upstream timeout"},
		{"empty body", http.StatusInternalServerError, "", "text/plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.GetPage(context.Background(), "about")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	if !IsUnauthorized(&Error{StatusCode: http.StatusUnauthorized}) {
		t.Error("IsUnauthorized(401) = false")
	}
	if IsUnauthorized(&Error{StatusCode: http.StatusForbidden}) {
		t.Error("IsUnauthorized(403) = true")
	}
	if !IsNotFound(&Error{StatusCode: http.StatusNotFound}) {
		t.Error("IsNotFound(404) = false")
	}
	if StatusOf(errors.New("network down")) != 0 {
		t.Error("StatusOf(non-API error) != 0")
	}
}

func TestLoginUnwrapsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["email"] != "admin@example.com" {
			t.Errorf("email = %q", body["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user":         map[string]any{"id": 7, "email": "admin@example.com", "role": "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Token != "tok-1" {
		t.Errorf("Token = %q, want tok-1", sess.Token)
	}
	if sess.User.ID != 7 || !sess.User.IsAdmin() {
		t.Errorf("User = %+v", sess.User)
	}
}

func TestListPostsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "6" || q.Get("category") != "Tax Planning" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(BlogPage{
			Posts:       []model.BlogPost{{ID: 1, Title: "First"}},
			Total:       13,
			Pages:       3,
			CurrentPage: 2,
			PerPage:     6,
			HasNext:     true,
			HasPrev:     true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	page, err := c.ListPosts(context.Background(), 2, 6, "Tax Planning")
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if page.Total != 13 || !page.HasNext || len(page.Posts) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestUpdateSettingsSkipsEmptyBatch(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.UpdateSettings(context.Background(), nil); err != nil {
		t.Fatalf("UpdateSettings(nil) error = %v", err)
	}
	if called {
		t.Error("empty batch triggered a request")
	}
}

func TestUpdateSettingsSendsOneBulkRequest(t *testing.T) {
	var requests int
	var got map[string]map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	changed := map[string]string{"site_name": "FinanceClinics", "contact_email": "hello@financeclinics.in"}
	if err := c.UpdateSettings(context.Background(), changed); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
	if got["settings"]["site_name"] != "FinanceClinics" {
		t.Errorf("payload = %v", got)
	}
}

func TestExportLeadsBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("status") {
			t.Errorf("unfiltered export sent status=%q", r.URL.Query().Get("status"))
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="leads_export.csv"`)
		_, _ = w.Write([]byte("id,name,email\n1,Asha,asha@example.com\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	blob, err := c.ExportLeads(context.Background(), "")
	if err != nil {
		t.Fatalf("ExportLeads() error = %v", err)
	}
	if blob.ContentType != "text/csv" {
		t.Errorf("ContentType = %q", blob.ContentType)
	}
	if blob.Filename != "leads_export.csv" {
		t.Errorf("Filename = %q", blob.Filename)
	}
	if !strings.HasPrefix(string(blob.Data), "id,name,email") {
		t.Errorf("Data = %q", blob.Data)
	}
}

func TestExportLeadsStatusFilter(t *testing.T) {
	var gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,name,email\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ExportLeads(context.Background(), "qualified"); err != nil {
		t.Fatalf("ExportLeads() error = %v", err)
	}
	if gotStatus != "qualified" {
		t.Errorf("status query = %q, want %q", gotStatus, "qualified")
	}
}

func TestImportMISRowsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "clients.csv" {
			t.Errorf("filename = %q", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"imported": 42})
	}))
	defer srv.Close()

	c := New(srv.URL)
	n, err := c.ImportMISRows(context.Background(), 3, "clients.csv", strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("ImportMISRows() error = %v", err)
	}
	if n != 42 {
		t.Errorf("imported = %d, want 42", n)
	}
}

func TestTimeParsing(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
	}{
		{"flask isoformat", `"2026-08-12T09:30:15.123456"`, false},
		{"rfc3339", `"2026-08-12T09:30:15Z"`, false},
		{"date only", `"2026-08-12"`, false},
		{"null", `null`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts model.Time
			if err := json.Unmarshal([]byte(tt.raw), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
			}
			if ts.IsZero() != tt.wantNil {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.wantNil)
			}
		})
	}
}
