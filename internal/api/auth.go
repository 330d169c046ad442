// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// Session is an issued credential pair: the bearer token and the user it
// identifies.
type Session struct {
	Token string
	User  model.User
}

type authResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         model.User `json:"user"`
}

// Login exchanges credentials for a session. Errors pass through unchanged
// for the caller to present.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.AccessToken, User: resp.User}, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.post(ctx, "/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.AccessToken, User: resp.User}, nil
}

// Logout notifies the server that the current token is discarded.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Me validates the current token and returns the authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"current_password": current, "new_password": updated}
	return c.post(ctx, "/auth/change-password", body, nil)
}
