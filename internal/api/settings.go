// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// PublicSettings returns the key/value map exposed to the public site.
func (c *Client) PublicSettings(ctx context.Context) (model.PublicSettings, error) {
	var resp struct {
		Settings model.PublicSettings `json:"settings"`
	}
	if err := c.get(ctx, "/settings/public", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Settings, nil
}

// AllSettings returns every setting record for the admin editor.
func (c *Client) AllSettings(ctx context.Context) ([]model.Setting, error) {
	var resp struct {
		All []model.Setting `json:"all"`
	}
	if err := c.get(ctx, "/settings/admin", nil, &resp); err != nil {
		return nil, err
	}
	return resp.All, nil
}

// UpdateSettings writes a batch of settings in one request. Callers send
// only the keys whose values actually changed.
func (c *Client) UpdateSettings(ctx context.Context, changed map[string]string) error {
	if len(changed) == 0 {
		return nil
	}
	body := map[string]map[string]string{"settings": changed}
	return c.post(ctx, "/settings/admin", body, nil)
}
