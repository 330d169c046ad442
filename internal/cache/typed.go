// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TypedCache wraps a Cacher with JSON encoding for one payload type, so
// ContentCache can hold pages, services, and posts in the same backend
// without repeating (de)serialization at every call site.
type TypedCache[T any] struct {
	backend Cacher
	ttl     time.Duration
}

// NewTypedCache creates a typed view over backend with the given TTL.
func NewTypedCache[T any](backend Cacher, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{backend: backend, ttl: ttl}
}

// Get returns the decoded value and true on a hit. A miss, a backend
// error, and a corrupt entry all report false; the caller reloads from
// the upstream API in every one of those cases.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set encodes value and stores it with the cache's TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, data, c.ttl)
}
