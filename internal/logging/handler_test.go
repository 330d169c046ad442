// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/traamakrishna3012/financeclinics/internal/middleware"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	inner := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		// Strip time for stable assertions
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(NewRequestPathHandler(inner))
}

func ctxWithPath(path string) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyRequestPath, path)
}

func TestHandlerAddsPathToWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.WarnContext(ctxWithPath("/admin/leads"), "upstream request failed", "status", 502)

	out := buf.String()
	if !strings.Contains(out, "path=/admin/leads") {
		t.Errorf("output missing path attribute: %s", out)
	}
	if !strings.Contains(out, "status=502") {
		t.Errorf("output missing original attributes: %s", out)
	}
}

func TestHandlerAddsPathToErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.ErrorContext(ctxWithPath("/contact"), "lead submission failed")

	if out := buf.String(); !strings.Contains(out, "path=/contact") {
		t.Errorf("output missing path attribute: %s", out)
	}
}

func TestHandlerLeavesInfoAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.InfoContext(ctxWithPath("/admin/leads"), "lead updated")

	if out := buf.String(); strings.Contains(out, "path=") {
		t.Errorf("info record should not be enriched: %s", out)
	}
}

func TestHandlerWithoutRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Warn("cache warm failed")

	out := buf.String()
	if strings.Contains(out, "path=") {
		t.Errorf("record without request context should have no path: %s", out)
	}
	if !strings.Contains(out, "cache warm failed") {
		t.Errorf("record not forwarded to inner handler: %s", out)
	}
}

func TestHandlerExplicitPathWins(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.WarnContext(ctxWithPath("/from-context"), "access denied", "path", "/explicit")

	out := buf.String()
	if !strings.Contains(out, "path=/explicit") {
		t.Errorf("explicit path attribute lost: %s", out)
	}
	if strings.Contains(out, "path=/from-context") {
		t.Errorf("context path should not duplicate explicit attribute: %s", out)
	}
}

func TestHandlerWithAttrsPreservesEnrichment(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf).With("component", "warmer")

	logger.WarnContext(ctxWithPath("/admin"), "slow response")

	out := buf.String()
	if !strings.Contains(out, "component=warmer") {
		t.Errorf("WithAttrs attribute lost: %s", out)
	}
	if !strings.Contains(out, "path=/admin") {
		t.Errorf("derived handler lost enrichment: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHandlerEnabledDelegates(t *testing.T) {
	inner := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := NewRequestPathHandler(inner)

	ctx := context.Background()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(INFO) = true with WARN inner handler")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Enabled(ERROR) = false with WARN inner handler")
	}
}
