// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Setting is a flat key-value site setting. Category groups settings for
// display; Type hints how the API interprets the value (string, boolean,
// number, json).
type Setting struct {
	ID          int64  `json:"id,omitempty"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayCategory returns the category used for grouping on the settings
// screen, falling back to "general" when the API left it empty.
func (s Setting) DisplayCategory() string {
	if s.Category == "" {
		return "general"
	}
	return s.Category
}

// PublicSettings holds the public site settings keyed by name. Values are
// mixed-typed: the API coerces boolean/number/json settings before responding.
type PublicSettings map[string]any

// String returns the setting value as a string, or def when absent.
func (p PublicSettings) String(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}
