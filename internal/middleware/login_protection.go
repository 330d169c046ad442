// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LoginProtection throttles the admin login form two ways: a per-IP
// token bucket on POST /admin/login, and a per-email lockout that
// doubles on each repeat lockout. The upstream API performs the actual
// credential check; this layer only decides whether to forward it.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.RWMutex
	attempts map[string]*loginAttempt

	maxFailures     int
	lockoutDuration time.Duration
	attemptWindow   time.Duration
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig tunes the login throttle. Zero values fall
// back to the defaults from DefaultLoginProtectionConfig.
type LoginProtectionConfig struct {
	// IPRateLimit is login POSTs per second per client IP.
	IPRateLimit float64
	// IPBurst is the token bucket size per client IP.
	IPBurst int
	// MaxFailedAttempts locks the account when reached within AttemptWindow.
	MaxFailedAttempts int
	// LockoutDuration is the first lockout length. It doubles per
	// repeat lockout, capped at 24 hours.
	LockoutDuration time.Duration
	// AttemptWindow is how long failures accumulate before resetting.
	AttemptWindow time.Duration
}

func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = 0.5
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = 5
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = 15 * time.Minute
	}

	lp := &LoginProtection{
		ipLimiters:      newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		attempts:        make(map[string]*loginAttempt),
		maxFailures:     cfg.MaxFailedAttempts,
		lockoutDuration: cfg.LockoutDuration,
		attemptWindow:   cfg.AttemptWindow,
	}

	go lp.cleanupLoop()

	return lp
}

// CheckIPRateLimit reports whether a login POST from ip may proceed.
func (lp *LoginProtection) CheckIPRateLimit(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// IsAccountLocked reports whether email is locked and for how much longer.
func (lp *LoginProtection) IsAccountLocked(email string) (bool, time.Duration) {
	lp.mu.RLock()
	attempt, ok := lp.attempts[email]
	lp.mu.RUnlock()

	if !ok {
		return false, 0
	}
	if time.Now().Before(attempt.lockedUntil) {
		return true, time.Until(attempt.lockedUntil)
	}
	return false, 0
}

// RecordFailedAttempt counts a rejected credential check against email.
// It returns (true, lockDuration) when this failure triggers a lockout.
func (lp *LoginProtection) RecordFailedAttempt(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	attempt, ok := lp.attempts[email]

	if !ok || now.Sub(attempt.firstFailed) > lp.attemptWindow {
		// Start or restart the window. Lockout history survives a
		// window reset so repeat offenders keep the longer penalty.
		if !ok {
			attempt = &loginAttempt{}
			lp.attempts[email] = attempt
		}
		attempt.count = 1
		attempt.firstFailed = now
		slog.Debug("login failure recorded", "email", email, "count", 1)
		return false, 0
	}

	attempt.count++
	slog.Debug("login failure recorded", "email", email, "count", attempt.count)

	if attempt.count < lp.maxFailures {
		return false, 0
	}

	lock := lp.lockoutDuration
	for i := 0; i < attempt.lockouts; i++ {
		lock *= 2
		if lock > 24*time.Hour {
			lock = 24 * time.Hour
			break
		}
	}

	attempt.lockedUntil = now.Add(lock)
	attempt.lockouts++
	attempt.count = 0

	slog.Warn("account locked after repeated login failures",
		"email", email,
		"lockouts", attempt.lockouts,
		"duration", lock,
	)

	return true, lock
}

// RecordSuccessfulLogin forgets the failure history for email.
func (lp *LoginProtection) RecordSuccessfulLogin(email string) {
	lp.mu.Lock()
	delete(lp.attempts, email)
	lp.mu.Unlock()

	slog.Debug("login failures cleared", "email", email)
}

// GetRemainingAttempts reports how many failures email has left before
// a lockout. Shown on the login form after a rejected attempt.
func (lp *LoginProtection) GetRemainingAttempts(email string) int {
	lp.mu.RLock()
	attempt, ok := lp.attempts[email]
	lp.mu.RUnlock()

	if !ok || time.Since(attempt.firstFailed) > lp.attemptWindow {
		return lp.maxFailures
	}

	remaining := lp.maxFailures - attempt.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (lp *LoginProtection) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		lp.removeStale()
	}
}

func (lp *LoginProtection) removeStale() {
	if lp.ipLimiters.clearIfExceeds(10000) {
		slog.Info("login rate limiter table cleared", "reason", "size")
	}

	now := time.Now()
	lp.mu.Lock()
	for email, attempt := range lp.attempts {
		if now.After(attempt.lockedUntil) && now.Sub(attempt.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, email)
		}
	}
	lp.mu.Unlock()
}

// Middleware rate-limits login POSTs per client IP. GETs render the
// form and pass through untouched.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := GetClientIP(r)
			if !lp.CheckIPRateLimit(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				http.Error(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetClientIP resolves the client address behind a reverse proxy:
// first X-Forwarded-For entry, then X-Real-IP, then the connection's
// remote address with the port stripped.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
