// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestLoginProtection(maxFailures int, lockout, window time.Duration) *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1000, // keep the IP bucket out of the way
		IPBurst:           1000,
		MaxFailedAttempts: maxFailures,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
}

func TestLoginProtectionDefaults(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})

	if lp.maxFailures != 5 {
		t.Errorf("maxFailures = %d, want 5", lp.maxFailures)
	}
	if lp.lockoutDuration != 15*time.Minute {
		t.Errorf("lockoutDuration = %v, want 15m", lp.lockoutDuration)
	}
	if lp.attemptWindow != 15*time.Minute {
		t.Errorf("attemptWindow = %v, want 15m", lp.attemptWindow)
	}
}

func TestLoginProtectionLocksAfterMaxFailures(t *testing.T) {
	lp := newTestLoginProtection(3, time.Minute, time.Minute)
	email := "admin@financeclinics.in"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("fresh account reported locked")
	}

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("failure %d locked the account early", i+1)
		}
	}

	locked, lock := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third failure did not lock the account")
	}
	if lock != time.Minute {
		t.Errorf("lock duration = %v, want 1m", lock)
	}

	locked, remaining := lp.IsAccountLocked(email)
	if !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked() = %v, %v after lockout", locked, remaining)
	}
}

func TestLoginProtectionLockExpires(t *testing.T) {
	lp := newTestLoginProtection(2, 50*time.Millisecond, time.Minute)
	email := "admin@financeclinics.in"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)

	time.Sleep(120 * time.Millisecond)

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Error("account still locked after the lockout elapsed")
	}
}

func TestLoginProtectionBackoffDoubles(t *testing.T) {
	lp := newTestLoginProtection(2, 40*time.Millisecond, time.Minute)
	email := "ops@financeclinics.in"

	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)

	time.Sleep(first + 20*time.Millisecond)

	lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if second != 2*first {
		t.Errorf("second lockout = %v, want %v", second, 2*first)
	}
}

func TestLoginProtectionSuccessClearsHistory(t *testing.T) {
	lp := newTestLoginProtection(3, time.Minute, time.Minute)
	email := "admin@financeclinics.in"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("GetRemainingAttempts() = %d, want 3 after successful login", got)
	}
}

func TestLoginProtectionRemainingAttempts(t *testing.T) {
	lp := newTestLoginProtection(5, time.Minute, time.Minute)
	email := "admin@financeclinics.in"

	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Fatalf("GetRemainingAttempts() = %d, want 5", got)
	}

	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 4 {
		t.Errorf("GetRemainingAttempts() = %d, want 4", got)
	}

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 2 {
		t.Errorf("GetRemainingAttempts() = %d, want 2", got)
	}
}

func TestLoginProtectionWindowReset(t *testing.T) {
	lp := newTestLoginProtection(5, time.Minute, 50*time.Millisecond)
	email := "admin@financeclinics.in"

	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 4 {
		t.Fatalf("GetRemainingAttempts() = %d, want 4", got)
	}

	time.Sleep(100 * time.Millisecond)

	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Errorf("GetRemainingAttempts() after window = %d, want 5", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xForwarded string
		xRealIP    string
		want       string
	}{
		{
			name:       "remote addr port stripped",
			remoteAddr: "192.168.1.1:12345",
			want:       "192.168.1.1",
		},
		{
			name:       "forwarded single",
			remoteAddr: "127.0.0.1:8080",
			xForwarded: "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded chain keeps first hop",
			remoteAddr: "127.0.0.1:8080",
			xForwarded: "203.0.113.7, 10.0.0.2, 10.0.0.3",
			want:       "203.0.113.7",
		},
		{
			name:       "real ip fallback",
			remoteAddr: "127.0.0.1:8080",
			xRealIP:    "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "forwarded wins over real ip",
			remoteAddr: "127.0.0.1:8080",
			xForwarded: "203.0.113.7",
			xRealIP:    "203.0.113.9",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded entry trimmed",
			remoteAddr: "127.0.0.1:8080",
			xForwarded: "  203.0.113.7  ",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwarded)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginProtectionMiddlewareThrottlesPosts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       0.001, // effectively no refill during the test
		IPBurst:           2,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	wrapped := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("email=admin%40financeclinics.in"))
		req.RemoteAddr = "198.51.100.4:55001"
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		return rr
	}

	if rr := post(); rr.Code != http.StatusOK {
		t.Fatalf("first POST status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr := post(); rr.Code != http.StatusOK {
		t.Fatalf("second POST status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr := post(); rr.Code != http.StatusTooManyRequests {
		t.Errorf("burst-exhausted POST status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}

	// The form itself stays reachable.
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.RemoteAddr = "198.51.100.4:55002"
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("GET status = %d, want %d", rr.Code, http.StatusOK)
	}
}
