// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic cache warmer that keeps the public
// content cache populated ahead of visitor traffic.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/traamakrishna3012/financeclinics/internal/cache"
)

// Warmer periodically refreshes the public content cache so the first
// visitor after a TTL expiry does not pay for the upstream round trips.
type Warmer struct {
	content  *cache.ContentCache
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// New creates a warmer that refreshes the content cache on the given cron
// schedule (e.g. "@every 10m").
func New(content *cache.ContentCache, schedule string, logger *slog.Logger) *Warmer {
	return &Warmer{
		content:  content,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the warm job and begins the schedule. The cache is warmed
// once immediately so the site starts hot; a failing upstream at boot only
// logs a warning.
func (w *Warmer) Start() error {
	_, err := w.cron.AddFunc(w.schedule, w.warm)
	if err != nil {
		return err
	}

	go w.warm()

	w.cron.Start()
	w.logger.Info("cache warmer started", "schedule", w.schedule)
	return nil
}

// Stop gracefully stops the warmer, waiting for a running warm to finish.
func (w *Warmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("cache warmer stopped")
}

// warm refreshes the listing entries. Errors leave existing entries intact,
// so a flaky upstream degrades to stale content rather than an empty site.
func (w *Warmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.content.Warm(ctx); err != nil {
		w.logger.Warn("cache warm failed", "error", err, "elapsed", time.Since(start))
		return
	}
	if stats, ok := w.content.Stats(); ok {
		w.logger.Debug("cache warmed", "elapsed", time.Since(start),
			"items", stats.Items, "hit_rate", stats.HitRate)
	} else {
		w.logger.Debug("cache warmed", "elapsed", time.Since(start))
	}
}
