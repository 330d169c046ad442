// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that enriches warning and error
// records with request context captured by the middleware layer.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/traamakrishna3012/financeclinics/internal/middleware"
)

// RequestPathHandler is a slog.Handler that wraps another handler and adds
// the current request path to records at WARN level and above, so upstream
// failures and access denials can be traced to the URL that triggered them.
type RequestPathHandler struct {
	inner slog.Handler
	level slog.Level // Minimum level to enrich (default: WARN)
}

// NewRequestPathHandler creates a handler that wraps the given handler.
// Records at WARN level and above gain a "path" attribute when the request
// path is available in the context.
func NewRequestPathHandler(inner slog.Handler) *RequestPathHandler {
	return &RequestPathHandler{
		inner: inner,
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *RequestPathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestPathHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		if path := middleware.GetRequestPath(ctx); path != "" && !hasAttr(r, "path") {
			r = r.Clone()
			r.AddAttrs(slog.String("path", path))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestPathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestPathHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *RequestPathHandler) WithGroup(name string) slog.Handler {
	return &RequestPathHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
	}
}

// hasAttr reports whether the record already carries an attribute with the
// given key, so explicit "path" attributes from call sites win.
func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}

// ParseLevel maps a configuration log level string to a slog.Level.
// Unknown values fall back to INFO.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup configures the process-wide default logger: a text handler on stdout
// at the given level, wrapped with request path enrichment.
func Setup(logLevel string) *slog.Logger {
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	})
	logger := slog.New(NewRequestPathHandler(textHandler))
	slog.SetDefault(logger)
	return logger
}
