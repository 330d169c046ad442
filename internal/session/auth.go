// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"log/slog"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// Auth coordinates the API auth endpoints with the credential store.
type Auth struct {
	client *api.Client
	store  Store
}

// NewAuth creates an Auth service over the given client and store.
func NewAuth(client *api.Client, store Store) *Auth {
	return &Auth{client: client, store: store}
}

// Store exposes the underlying credential store.
func (a *Auth) Store() Store {
	return a.store
}

// Login exchanges credentials for a session and persists it.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	a.store.SetSession(ctx, sess.Token, sess.User)
	return sess.User, nil
}

// Signup registers a new account and persists its session.
func (a *Auth) Signup(ctx context.Context, name, email, password string) (model.User, error) {
	sess, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		return model.User{}, err
	}
	a.store.SetSession(ctx, sess.Token, sess.User)
	return sess.User, nil
}

// Logout clears the local session first so the user is signed out even when
// the server is unreachable, then notifies the server on a best-effort basis.
func (a *Auth) Logout(ctx context.Context) {
	hadToken := a.store.Token(ctx) != ""
	a.store.Clear(ctx)
	if !hadToken {
		return
	}
	if err := a.client.Logout(ctx); err != nil {
		slog.Debug("server logout failed", "error", err)
	}
}

// Validate checks the stored token against the API. On success the cached
// user is refreshed; on a 401 the stale credentials are cleared. Transient
// errors keep the cached user so a flaky upstream does not log people out.
func (a *Auth) Validate(ctx context.Context) (model.User, bool) {
	if a.store.Token(ctx) == "" {
		return model.User{}, false
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			a.store.Clear(ctx)
			return model.User{}, false
		}
		if cached, ok := a.store.User(ctx); ok {
			return cached, true
		}
		return model.User{}, false
	}

	a.store.SetUser(ctx, user)
	return user, true
}

// ChangePassword changes the authenticated user's password.
func (a *Auth) ChangePassword(ctx context.Context, current, updated string) error {
	return a.client.ChangePassword(ctx, current, updated)
}
