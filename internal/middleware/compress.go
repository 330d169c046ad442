// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

type gzipResponseWriter struct {
	http.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.gz.Write(b)
}

// Compress gzip-encodes response bodies for clients that advertise
// support. Every route on this site serves HTML, CSV, or JSON, all of
// which compress well, so no content-type filtering is applied.
func Compress(level int) func(http.Handler) http.Handler {
	// One pool per middleware instance; writers are reset onto the live
	// ResponseWriter before use.
	pool := sync.Pool{
		New: func() any {
			gz, err := gzip.NewWriterLevel(io.Discard, level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			gz := pool.Get().(*gzip.Writer)
			gz.Reset(w)
			defer func() {
				_ = gz.Close()
				pool.Put(gz)
			}()

			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Set("Vary", "Accept-Encoding")
			// Content-Length would describe the uncompressed body.
			w.Header().Del("Content-Length")

			next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gz: gz}, r)
		})
	}
}
