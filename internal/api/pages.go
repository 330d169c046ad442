// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// PageInput is the editable subset of a page sent on create and update.
type PageInput struct {
	Title           string `json:"title"`
	Slug            string `json:"slug,omitempty"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
	FeaturedImage   string `json:"featured_image,omitempty"`
	IsPublished     bool   `json:"is_published"`
	SortOrder       int    `json:"sort_order"`
	Template        string `json:"template,omitempty"`
}

// ListPages returns the published pages visible on the public site.
func (c *Client) ListPages(ctx context.Context) ([]model.Page, error) {
	var resp struct {
		Pages []model.Page `json:"pages"`
	}
	if err := c.get(ctx, "/pages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pages, nil
}

// GetPage looks up a published page by its public slug.
func (c *Client) GetPage(ctx context.Context, slug string) (model.Page, error) {
	var resp struct {
		Page model.Page `json:"page"`
	}
	if err := c.get(ctx, "/pages/"+slug, nil, &resp); err != nil {
		return model.Page{}, err
	}
	return resp.Page, nil
}

// AdminListPages returns every page, published or not.
func (c *Client) AdminListPages(ctx context.Context) ([]model.Page, error) {
	var resp struct {
		Pages []model.Page `json:"pages"`
	}
	if err := c.get(ctx, "/pages/admin", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pages, nil
}

// AdminGetPage looks up a page by ID, including unpublished content.
func (c *Client) AdminGetPage(ctx context.Context, id int64) (model.Page, error) {
	var resp struct {
		Page model.Page `json:"page"`
	}
	if err := c.get(ctx, fmt.Sprintf("/pages/admin/%d", id), nil, &resp); err != nil {
		return model.Page{}, err
	}
	return resp.Page, nil
}

// CreatePage creates a page and returns the stored record.
func (c *Client) CreatePage(ctx context.Context, input PageInput) (model.Page, error) {
	var resp struct {
		Page model.Page `json:"page"`
	}
	if err := c.post(ctx, "/pages/admin", input, &resp); err != nil {
		return model.Page{}, err
	}
	return resp.Page, nil
}

// UpdatePage updates a page by ID.
func (c *Client) UpdatePage(ctx context.Context, id int64, input PageInput) (model.Page, error) {
	var resp struct {
		Page model.Page `json:"page"`
	}
	if err := c.put(ctx, fmt.Sprintf("/pages/admin/%d", id), input, &resp); err != nil {
		return model.Page{}, err
	}
	return resp.Page, nil
}

// DeletePage removes a page by ID.
func (c *Client) DeletePage(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/pages/admin/%d", id))
}
