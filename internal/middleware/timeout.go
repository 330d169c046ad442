// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds request handling. The deadline is carried on the request
// context, so handlers blocked on upstream API calls get cancelled with
// it; a handler that overruns without having written anything gets a 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			ow := &onceWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(ow, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				ow.mu.Lock()
				defer ow.mu.Unlock()
				if !ow.wrote {
					ow.wrote = true
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte("Request timeout"))
				}
			}
		})
	}
}

// onceWriter lets exactly one party write the response header: the
// handler goroutine or the timeout branch, whichever comes first.
type onceWriter struct {
	http.ResponseWriter
	mu    sync.Mutex
	wrote bool
}

func (ow *onceWriter) WriteHeader(code int) {
	ow.mu.Lock()
	defer ow.mu.Unlock()
	if ow.wrote {
		return
	}
	ow.wrote = true
	ow.ResponseWriter.WriteHeader(code)
}

func (ow *onceWriter) Write(b []byte) (int, error) {
	ow.mu.Lock()
	defer ow.mu.Unlock()
	if !ow.wrote {
		ow.wrote = true
		ow.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return ow.ResponseWriter.Write(b)
}
