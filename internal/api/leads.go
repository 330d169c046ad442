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

// LeadPage is one page of the admin lead listing.
type LeadPage struct {
	Leads       []model.Lead `json:"leads"`
	Total       int64        `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
	PerPage     int          `json:"per_page"`
	HasNext     bool         `json:"has_next"`
	HasPrev     bool         `json:"has_prev"`
}

// LeadUpdate carries the fields an admin may change on a lead. Nil fields
// are left untouched.
type LeadUpdate struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type leadEnvelope struct {
	Lead model.Lead `json:"lead"`
}

// SubmitContact sends a public contact form submission. No token is
// required; the server records it as a new lead.
func (c *Client) SubmitContact(ctx context.Context, form model.ContactForm) error {
	return c.post(ctx, "/contact", form, nil)
}

// AdminListLeads returns one page of leads, optionally filtered by status.
func (c *Client) AdminListLeads(ctx context.Context, page, perPage int, status string) (LeadPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	if status != "" {
		query.Set("status", status)
	}
	var resp LeadPage
	if err := c.get(ctx, "/contact/admin", query, &resp); err != nil {
		return LeadPage{}, err
	}
	return resp, nil
}

// AdminGetLead looks up a lead by ID.
func (c *Client) AdminGetLead(ctx context.Context, id int64) (model.Lead, error) {
	var resp leadEnvelope
	if err := c.get(ctx, fmt.Sprintf("/contact/admin/%d", id), nil, &resp); err != nil {
		return model.Lead{}, err
	}
	return resp.Lead, nil
}

// UpdateLead changes a lead's status or notes.
func (c *Client) UpdateLead(ctx context.Context, id int64, update LeadUpdate) (model.Lead, error) {
	var resp leadEnvelope
	if err := c.put(ctx, fmt.Sprintf("/contact/admin/%d", id), update, &resp); err != nil {
		return model.Lead{}, err
	}
	return resp.Lead, nil
}

// DeleteLead removes a lead by ID.
func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/contact/admin/%d", id))
}

// ExportLeads downloads the lead list as a CSV attachment. A non-empty
// status narrows the export the same way it narrows the listing.
func (c *Client) ExportLeads(ctx context.Context, status string) (*Blob, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {status}}
	}
	return c.getBlob(ctx, "/contact/admin/export", query)
}

// LeadStats returns aggregate lead counts for the admin dashboard.
func (c *Client) LeadStats(ctx context.Context) (model.LeadStats, error) {
	var resp model.LeadStats
	if err := c.get(ctx, "/contact/admin/stats", nil, &resp); err != nil {
		return model.LeadStats{}, err
	}
	return resp, nil
}
