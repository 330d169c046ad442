// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// MISTemplateInput is the editable subset of a report template.
type MISTemplateInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Columns     []model.MISColumn `json:"columns"`
}

type templateEnvelope struct {
	Template model.MISTemplate `json:"template"`
}

// ListMISTemplates returns every report template.
func (c *Client) ListMISTemplates(ctx context.Context) ([]model.MISTemplate, error) {
	var resp struct {
		Templates []model.MISTemplate `json:"templates"`
	}
	if err := c.get(ctx, "/admin/mis/templates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// GetMISTemplate looks up a report template by ID.
func (c *Client) GetMISTemplate(ctx context.Context, id int64) (model.MISTemplate, error) {
	var resp templateEnvelope
	if err := c.get(ctx, fmt.Sprintf("/admin/mis/templates/%d", id), nil, &resp); err != nil {
		return model.MISTemplate{}, err
	}
	return resp.Template, nil
}

// CreateMISTemplate creates a report template.
func (c *Client) CreateMISTemplate(ctx context.Context, input MISTemplateInput) (model.MISTemplate, error) {
	var resp templateEnvelope
	if err := c.post(ctx, "/admin/mis/templates", input, &resp); err != nil {
		return model.MISTemplate{}, err
	}
	return resp.Template, nil
}

// UpdateMISTemplate updates a report template by ID.
func (c *Client) UpdateMISTemplate(ctx context.Context, id int64, input MISTemplateInput) (model.MISTemplate, error) {
	var resp templateEnvelope
	if err := c.put(ctx, fmt.Sprintf("/admin/mis/templates/%d", id), input, &resp); err != nil {
		return model.MISTemplate{}, err
	}
	return resp.Template, nil
}

// DeleteMISTemplate removes a report template and its rows.
func (c *Client) DeleteMISTemplate(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/mis/templates/%d", id))
}

// MISRows returns the data rows stored under a template.
func (c *Client) MISRows(ctx context.Context, templateID int64) ([]model.MISRow, error) {
	var resp struct {
		Rows []model.MISRow `json:"rows"`
	}
	if err := c.get(ctx, fmt.Sprintf("/admin/mis/templates/%d/rows", templateID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// ImportMISRows uploads a spreadsheet into a template and reports how many
// rows the server accepted.
func (c *Client) ImportMISRows(ctx context.Context, templateID int64, filename string, file io.Reader) (int, error) {
	var resp struct {
		Imported int `json:"imported"`
	}
	path := fmt.Sprintf("/admin/mis/templates/%d/import", templateID)
	if err := c.postMultipart(ctx, path, nil, "file", filename, file, &resp); err != nil {
		return 0, err
	}
	return resp.Imported, nil
}

// ExportMISTemplate downloads a template's rows in the requested format.
// Accepted formats are listed in model.MISExportFormats.
func (c *Client) ExportMISTemplate(ctx context.Context, templateID int64, format string) (*Blob, error) {
	query := url.Values{"format": {format}}
	path := fmt.Sprintf("/admin/mis/templates/%d/export", templateID)
	return c.getBlob(ctx, path, query)
}
