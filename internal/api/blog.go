// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// BlogPage is one page of a paginated blog listing.
type BlogPage struct {
	Posts       []model.BlogPost `json:"posts"`
	Total       int64            `json:"total"`
	Pages       int              `json:"pages"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	HasNext     bool             `json:"has_next"`
	HasPrev     bool             `json:"has_prev"`
}

// BlogPostInput is the editable subset of a blog post.
type BlogPostInput struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Content         string   `json:"content"`
	FeaturedImage   string   `json:"featured_image,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	IsPublished     bool     `json:"is_published"`
}

type postEnvelope struct {
	Post model.BlogPost `json:"post"`
}

// ListPosts returns one page of published posts, optionally filtered by category.
func (c *Client) ListPosts(ctx context.Context, page, perPage int, category string) (BlogPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	if category != "" {
		query.Set("category", category)
	}
	var resp BlogPage
	if err := c.get(ctx, "/blog", query, &resp); err != nil {
		return BlogPage{}, err
	}
	return resp, nil
}

// BlogCategories returns the distinct categories of published posts.
func (c *Client) BlogCategories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.get(ctx, "/blog/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// RecentPosts returns the most recently published posts.
func (c *Client) RecentPosts(ctx context.Context, limit int) ([]model.BlogPost, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var resp struct {
		Posts []model.BlogPost `json:"posts"`
	}
	if err := c.get(ctx, "/blog/recent", query, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// GetPost looks up a published post by slug.
func (c *Client) GetPost(ctx context.Context, slug string) (model.BlogPost, error) {
	var resp postEnvelope
	if err := c.get(ctx, "/blog/"+slug, nil, &resp); err != nil {
		return model.BlogPost{}, err
	}
	return resp.Post, nil
}

// AdminListPosts returns one page of all posts, drafts included.
func (c *Client) AdminListPosts(ctx context.Context, page, perPage int) (BlogPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var resp BlogPage
	if err := c.get(ctx, "/blog/admin", query, &resp); err != nil {
		return BlogPage{}, err
	}
	return resp, nil
}

// AdminGetPost looks up a post by ID.
func (c *Client) AdminGetPost(ctx context.Context, id int64) (model.BlogPost, error) {
	var resp postEnvelope
	if err := c.get(ctx, fmt.Sprintf("/blog/admin/%d", id), nil, &resp); err != nil {
		return model.BlogPost{}, err
	}
	return resp.Post, nil
}

// CreatePost creates a blog post.
func (c *Client) CreatePost(ctx context.Context, input BlogPostInput) (model.BlogPost, error) {
	var resp postEnvelope
	if err := c.post(ctx, "/blog/admin", input, &resp); err != nil {
		return model.BlogPost{}, err
	}
	return resp.Post, nil
}

// UpdatePost updates a post by ID.
func (c *Client) UpdatePost(ctx context.Context, id int64, input BlogPostInput) (model.BlogPost, error) {
	var resp postEnvelope
	if err := c.put(ctx, fmt.Sprintf("/blog/admin/%d", id), input, &resp); err != nil {
		return model.BlogPost{}, err
	}
	return resp.Post, nil
}

// DeletePost removes a post by ID.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/blog/admin/%d", id))
}
