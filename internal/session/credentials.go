// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/alexedwards/scs/v2"

	"github.com/traamakrishna3012/financeclinics/internal/model"
)

// Session value keys.
const (
	keyToken = "auth_token"
	keyUser  = "auth_user"
)

// Store persists the API credential pair: the bearer token and the cached
// user record it belongs to. The web app backs it with server-side sessions;
// the CLI backs it with a config file.
type Store interface {
	// Token returns the stored bearer token, or "" when logged out.
	Token(ctx context.Context) string
	// User returns the cached user record and whether one is stored.
	User(ctx context.Context) (model.User, bool)
	// SetSession stores a fresh token and user together after login.
	SetSession(ctx context.Context, token string, user model.User)
	// SetUser refreshes the cached user without touching the token.
	SetUser(ctx context.Context, user model.User)
	// Clear removes both the token and the cached user.
	Clear(ctx context.Context)
}

// SCSStore is a Store backed by an scs session manager. Both credential keys
// live in the same server-side session record, so they expire together.
type SCSStore struct {
	sm *scs.SessionManager
}

// NewSCSStore wraps a session manager as a credential Store.
func NewSCSStore(sm *scs.SessionManager) *SCSStore {
	return &SCSStore{sm: sm}
}

// Token returns the stored bearer token, or "" when logged out.
func (s *SCSStore) Token(ctx context.Context) string {
	return s.sm.GetString(ctx, keyToken)
}

// User returns the cached user record and whether one is stored.
func (s *SCSStore) User(ctx context.Context) (model.User, bool) {
	raw := s.sm.GetBytes(ctx, keyUser)
	if len(raw) == 0 {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		slog.Warn("discarding unreadable cached user", "error", err)
		s.sm.Remove(ctx, keyUser)
		return model.User{}, false
	}
	return u, true
}

// SetSession stores a fresh token and user together after login. The session
// token is renewed to prevent fixation.
func (s *SCSStore) SetSession(ctx context.Context, token string, user model.User) {
	if err := s.sm.RenewToken(ctx); err != nil {
		slog.Warn("renewing session token", "error", err)
	}
	s.sm.Put(ctx, keyToken, token)
	s.putUser(ctx, user)
}

// SetUser refreshes the cached user without touching the token.
func (s *SCSStore) SetUser(ctx context.Context, user model.User) {
	s.putUser(ctx, user)
}

// Clear removes both credential keys. Clearing one without the other would
// leave a half-authenticated session, so they always go together.
func (s *SCSStore) Clear(ctx context.Context) {
	s.sm.Remove(ctx, keyToken)
	s.sm.Remove(ctx, keyUser)
}

func (s *SCSStore) putUser(ctx context.Context, user model.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		slog.Warn("encoding cached user", "error", err)
		return
	}
	s.sm.Put(ctx, keyUser, raw)
}
