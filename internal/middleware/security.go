// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// SecurityHeadersConfig controls the browser security headers stamped
// on every HTML response.
type SecurityHeadersConfig struct {
	// IsDevelopment relaxes the CSP and disables HSTS for local work
	// over plain HTTP.
	IsDevelopment bool

	// ContentSecurityPolicy overrides the built default when non-empty.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds. Zero disables the header.
	HSTSMaxAge int

	HSTSIncludeSubDomains bool
	HSTSPreload           bool

	// FrameOptions is the X-Frame-Options value, empty to omit.
	FrameOptions string

	// ReferrerPolicy is the Referrer-Policy value, empty to omit.
	ReferrerPolicy string

	// PermissionsPolicy overrides the built default when non-empty.
	PermissionsPolicy string

	// ExcludePaths lists URL path prefixes that skip the headers
	// entirely, such as the metrics and health endpoints.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the policy the site runs with.
// Inline styles stay allowed because the templates carry small style
// attributes, and Google Fonts serves the heading typeface.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000,
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}

	if isDev {
		cfg.ContentSecurityPolicy = buildCSP(map[string]string{
			"default-src": "'self'",
			"script-src":  "'self' 'unsafe-inline' 'unsafe-eval'",
			"style-src":   "'self' 'unsafe-inline' https://fonts.googleapis.com",
			"img-src":     "'self' data: blob: https:",
			"font-src":    "'self' data: https://fonts.gstatic.com",
			"connect-src": "'self'",
			"object-src":  "'none'",
			"base-uri":    "'self'",
			"form-action": "'self'",
		})
	} else {
		cfg.ContentSecurityPolicy = buildCSP(map[string]string{
			"default-src": "'self'",
			"script-src":  "'self' 'unsafe-inline' https://www.googletagmanager.com https://www.google-analytics.com",
			"style-src":   "'self' 'unsafe-inline' https://fonts.googleapis.com",
			"img-src":     "'self' data: blob: https:",
			"font-src":    "'self' data: https://fonts.gstatic.com",
			"connect-src": "'self' https://www.google-analytics.com",
			"object-src":  "'none'",
			"base-uri":    "'self'",
			"form-action": "'self'",
		})
		cfg.HSTSIncludeSubDomains = true
	}

	// Nothing on a marketing site needs device access.
	cfg.PermissionsPolicy = buildPermissionsPolicy(map[string]string{
		"accelerometer":   "()",
		"browsing-topics": "()",
		"camera":          "()",
		"geolocation":     "()",
		"gyroscope":       "()",
		"interest-cohort": "()",
		"magnetometer":    "()",
		"microphone":      "()",
		"payment":         "()",
		"usb":             "()",
	})

	return cfg
}

// cspOrder fixes directive ordering so the header is stable across
// restarts.
var cspOrder = []string{
	"default-src", "script-src", "style-src", "img-src", "font-src",
	"connect-src", "frame-src", "object-src", "base-uri", "form-action",
	"frame-ancestors", "upgrade-insecure-requests",
}

func buildCSP(directives map[string]string) string {
	parts := make([]string, 0, len(directives))
	seen := make(map[string]bool, len(directives))

	for _, key := range cspOrder {
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(directives))
	for key := range directives {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		parts = append(parts, key+" "+directives[key])
	}

	return strings.Join(parts, "; ")
}

func buildPermissionsPolicy(policies map[string]string) string {
	keys := make([]string, 0, len(policies))
	for key := range policies {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+policies[key])
	}
	return strings.Join(parts, ", ")
}

// SecurityHeaders stamps the configured headers on every response
// whose path is not excluded.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if cfg.ContentSecurityPolicy != "" {
				w.Header().Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}

			// HSTS only makes sense on the HTTPS deployment.
			if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
				hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
				if cfg.HSTSIncludeSubDomains {
					hsts += "; includeSubDomains"
				}
				if cfg.HSTSPreload {
					hsts += "; preload"
				}
				w.Header().Set("Strict-Transport-Security", hsts)
			}

			if cfg.FrameOptions != "" {
				w.Header().Set("X-Frame-Options", cfg.FrameOptions)
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-XSS-Protection", "1; mode=block")

			if cfg.ReferrerPolicy != "" {
				w.Header().Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				w.Header().Set("Permissions-Policy", cfg.PermissionsPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
