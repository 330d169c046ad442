// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/metrics"
	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// Content cache keys. Blog listings append page/category to the base key.
const (
	keyPages       = "content:pages"
	keyPage        = "content:page:"
	keyServices    = "content:services"
	keyFeatured    = "content:services:featured"
	keyService     = "content:service:"
	keyBlogPage    = "content:blog:"
	keyPost        = "content:post:"
	keyCategories  = "content:blog:categories"
	keyRecentPosts = "content:blog:recent"
	keySettings    = "content:settings"
)

// ContentCache caches the public content read from the FinanceClinics API.
// Admin reads always bypass it; only the anonymous site goes through here, so
// a stale entry can never hide an unpublished draft from its editor.
type ContentCache struct {
	client  *api.Client
	backend Cacher

	pages      *TypedCache[[]model.Page]
	page       *TypedCache[model.Page]
	services   *TypedCache[[]model.Service]
	service    *TypedCache[model.Service]
	blogPage   *TypedCache[api.BlogPage]
	post       *TypedCache[model.BlogPost]
	categories *TypedCache[[]string]
	recent     *TypedCache[[]model.BlogPost]
	settings   *TypedCache[model.PublicSettings]
}

// NewContentCache builds a ContentCache over the given backend and API client.
func NewContentCache(backend Cacher, client *api.Client, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client:     client,
		backend:    backend,
		pages:      NewTypedCache[[]model.Page](backend, ttl),
		page:       NewTypedCache[model.Page](backend, ttl),
		services:   NewTypedCache[[]model.Service](backend, ttl),
		service:    NewTypedCache[model.Service](backend, ttl),
		blogPage:   NewTypedCache[api.BlogPage](backend, ttl),
		post:       NewTypedCache[model.BlogPost](backend, ttl),
		categories: NewTypedCache[[]string](backend, ttl),
		recent:     NewTypedCache[[]model.BlogPost](backend, ttl),
		settings:   NewTypedCache[model.PublicSettings](backend, ttl),
	}
}

// fetch wraps GetOrSet with hit/miss metrics under a stable key label.
func fetch[T any](ctx context.Context, tc *TypedCache[T], key, label string, load func() (*T, error)) (*T, error) {
	if value, ok := tc.Get(ctx, key); ok {
		metrics.CacheHitsTotal.WithLabelValues(label).Inc()
		return value, nil
	}
	metrics.CacheMissesTotal.WithLabelValues(label).Inc()
	value, err := load()
	if err != nil {
		return nil, err
	}
	_ = tc.Set(ctx, key, value)
	return value, nil
}

// Pages returns the published pages.
func (c *ContentCache) Pages(ctx context.Context) ([]model.Page, error) {
	v, err := fetch(ctx, c.pages, keyPages, "pages", func() (*[]model.Page, error) {
		pages, err := c.client.ListPages(ctx)
		if err != nil {
			return nil, err
		}
		return &pages, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// Page returns one published page by slug.
func (c *ContentCache) Page(ctx context.Context, slug string) (model.Page, error) {
	v, err := fetch(ctx, c.page, keyPage+slug, "page", func() (*model.Page, error) {
		page, err := c.client.GetPage(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &page, nil
	})
	if err != nil {
		return model.Page{}, err
	}
	return *v, nil
}

// Services returns the published services.
func (c *ContentCache) Services(ctx context.Context) ([]model.Service, error) {
	v, err := fetch(ctx, c.services, keyServices, "services", func() (*[]model.Service, error) {
		services, err := c.client.ListServices(ctx)
		if err != nil {
			return nil, err
		}
		return &services, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// FeaturedServices returns the services highlighted on the home page.
func (c *ContentCache) FeaturedServices(ctx context.Context) ([]model.Service, error) {
	v, err := fetch(ctx, c.services, keyFeatured, "services_featured", func() (*[]model.Service, error) {
		services, err := c.client.FeaturedServices(ctx)
		if err != nil {
			return nil, err
		}
		return &services, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// Service returns one published service by slug.
func (c *ContentCache) Service(ctx context.Context, slug string) (model.Service, error) {
	v, err := fetch(ctx, c.service, keyService+slug, "service", func() (*model.Service, error) {
		svc, err := c.client.GetService(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &svc, nil
	})
	if err != nil {
		return model.Service{}, err
	}
	return *v, nil
}

// BlogPage returns one page of the public blog listing.
func (c *ContentCache) BlogPage(ctx context.Context, page, perPage int, category string) (api.BlogPage, error) {
	key := fmt.Sprintf("%s%d:%d:%s", keyBlogPage, page, perPage, category)
	v, err := fetch(ctx, c.blogPage, key, "blog_page", func() (*api.BlogPage, error) {
		bp, err := c.client.ListPosts(ctx, page, perPage, category)
		if err != nil {
			return nil, err
		}
		return &bp, nil
	})
	if err != nil {
		return api.BlogPage{}, err
	}
	return *v, nil
}

// Post returns one published blog post by slug.
func (c *ContentCache) Post(ctx context.Context, slug string) (model.BlogPost, error) {
	v, err := fetch(ctx, c.post, keyPost+slug, "post", func() (*model.BlogPost, error) {
		post, err := c.client.GetPost(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &post, nil
	})
	if err != nil {
		return model.BlogPost{}, err
	}
	return *v, nil
}

// Categories returns the distinct blog categories.
func (c *ContentCache) Categories(ctx context.Context) ([]string, error) {
	v, err := fetch(ctx, c.categories, keyCategories, "categories", func() (*[]string, error) {
		cats, err := c.client.BlogCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &cats, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// RecentPosts returns the most recently published posts.
func (c *ContentCache) RecentPosts(ctx context.Context, limit int) ([]model.BlogPost, error) {
	key := fmt.Sprintf("%s:%d", keyRecentPosts, limit)
	v, err := fetch(ctx, c.recent, key, "recent_posts", func() (*[]model.BlogPost, error) {
		posts, err := c.client.RecentPosts(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &posts, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// Settings returns the public site settings.
func (c *ContentCache) Settings(ctx context.Context) (model.PublicSettings, error) {
	v, err := fetch(ctx, c.settings, keySettings, "settings", func() (*model.PublicSettings, error) {
		settings, err := c.client.PublicSettings(ctx)
		if err != nil {
			return nil, err
		}
		return &settings, nil
	})
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// Stats reports the backend's counters when the backend tracks them.
func (c *ContentCache) Stats() (CacheStats, bool) {
	if sp, ok := c.backend.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return CacheStats{}, false
}

// Warm pre-populates the listing entries the home page needs. Failures are
// returned for logging but leave previously cached entries intact.
func (c *ContentCache) Warm(ctx context.Context) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	_, err := c.Pages(ctx)
	record(err)
	_, err = c.Services(ctx)
	record(err)
	_, err = c.FeaturedServices(ctx)
	record(err)
	_, err = c.Categories(ctx)
	record(err)
	_, err = c.RecentPosts(ctx, 3)
	record(err)
	_, err = c.Settings(ctx)
	record(err)

	return firstErr
}
