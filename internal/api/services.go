// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// ServiceInput is the editable subset of a service offering.
type ServiceInput struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	Description      string   `json:"description,omitempty"`
	Icon             string   `json:"icon,omitempty"`
	FeaturedImage    string   `json:"featured_image,omitempty"`
	Features         []string `json:"features,omitempty"`
	MetaTitle        string   `json:"meta_title,omitempty"`
	MetaDescription  string   `json:"meta_description,omitempty"`
	IsFeatured       bool     `json:"is_featured"`
	IsPublished      bool     `json:"is_published"`
	DisplayOrder     int      `json:"display_order"`
}

type servicesEnvelope struct {
	Services []model.Service `json:"services"`
}

type serviceEnvelope struct {
	Service model.Service `json:"service"`
}

// ListServices returns the published service offerings.
func (c *Client) ListServices(ctx context.Context) ([]model.Service, error) {
	var resp servicesEnvelope
	if err := c.get(ctx, "/services", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// FeaturedServices returns the services highlighted on the home page.
func (c *Client) FeaturedServices(ctx context.Context) ([]model.Service, error) {
	var resp servicesEnvelope
	if err := c.get(ctx, "/services/featured", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// GetService looks up a published service by slug.
func (c *Client) GetService(ctx context.Context, slug string) (model.Service, error) {
	var resp serviceEnvelope
	if err := c.get(ctx, "/services/"+slug, nil, &resp); err != nil {
		return model.Service{}, err
	}
	return resp.Service, nil
}

// AdminListServices returns every service, published or not.
func (c *Client) AdminListServices(ctx context.Context) ([]model.Service, error) {
	var resp servicesEnvelope
	if err := c.get(ctx, "/services/admin", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Services, nil
}

// AdminGetService looks up a service by ID.
func (c *Client) AdminGetService(ctx context.Context, id int64) (model.Service, error) {
	var resp serviceEnvelope
	if err := c.get(ctx, fmt.Sprintf("/services/admin/%d", id), nil, &resp); err != nil {
		return model.Service{}, err
	}
	return resp.Service, nil
}

// CreateService creates a service offering.
func (c *Client) CreateService(ctx context.Context, input ServiceInput) (model.Service, error) {
	var resp serviceEnvelope
	if err := c.post(ctx, "/services/admin", input, &resp); err != nil {
		return model.Service{}, err
	}
	return resp.Service, nil
}

// UpdateService updates a service by ID.
func (c *Client) UpdateService(ctx context.Context, id int64, input ServiceInput) (model.Service, error) {
	var resp serviceEnvelope
	if err := c.put(ctx, fmt.Sprintf("/services/admin/%d", id), input, &resp); err != nil {
		return model.Service{}, err
	}
	return resp.Service, nil
}

// DeleteService removes a service by ID.
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/services/admin/%d", id))
}
