// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the entity shapes exchanged with the FinanceClinics API.
// The API owns persistence and validation of these records; this package only
// models their JSON representation for decoding and display.
package model

import (
	"strings"
	"time"
)

// timeFormats lists the timestamp layouts the API is known to emit.
// The backend serializes naive UTC datetimes (no zone suffix).
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time is a time.Time that tolerates the API's timestamp variants and null.
type Time struct {
	time.Time
}

// UnmarshalJSON parses a JSON timestamp, accepting null and zone-less layouts.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timeFormats {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON encodes the timestamp as RFC 3339, or null when zero.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}
