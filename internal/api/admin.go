// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// UserInput is the editable subset of a user account.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type userEnvelope struct {
	User model.User `json:"user"`
}

// Dashboard returns the aggregate counters, status breakdown, monthly trend
// and recent activity feed shown on the admin home screen.
func (c *Client) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	var resp model.DashboardStats
	if err := c.get(ctx, "/admin/dashboard", nil, &resp); err != nil {
		return model.DashboardStats{}, err
	}
	return resp, nil
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var resp struct {
		Users []model.User `json:"users"`
	}
	if err := c.get(ctx, "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (model.User, error) {
	var resp userEnvelope
	if err := c.post(ctx, "/admin/users", input, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// UpdateUser updates an account by ID.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (model.User, error) {
	var resp userEnvelope
	if err := c.put(ctx, fmt.Sprintf("/admin/users/%d", id), input, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// DeleteUser removes an account by ID.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// ApproveUser activates a pending account.
func (c *Client) ApproveUser(ctx context.Context, id int64) (model.User, error) {
	var resp userEnvelope
	if err := c.post(ctx, fmt.Sprintf("/admin/users/%d/approve", id), nil, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}
