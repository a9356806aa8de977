package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumescore/internal/errors"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	limiter := NewRateLimiter(60, 5, errors.NewLogger(slog.LevelError))
	defer limiter.Close()

	for i := 0; i < 5; i++ {
		if !limiter.Allow("client-1") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if limiter.Allow("client-1") {
		t.Error("request beyond burst should be denied")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(60, 1, errors.NewLogger(slog.LevelError))
	defer limiter.Close()

	if !limiter.Allow("client-a") {
		t.Fatal("first request for client-a denied")
	}
	if limiter.Allow("client-a") {
		t.Error("second request for client-a should exceed burst")
	}
	if !limiter.Allow("client-b") {
		t.Error("client-b should have its own bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	s := newTestServer(t, nil)
	s.RateLimit.Enabled = true
	s.RateLimit.RequestsPerMinute = 60
	s.RateLimit.Burst = 2
	s.RateLimiter = NewRateLimiter(60, 2, s.Logger)
	defer s.RateLimiter.Close()

	handler := s.rateLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		handler(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("requests within burst got %v", codes[:2])
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("request beyond burst got %d, want 429", codes[3])
	}
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.2")

	if ip := getClientIP(req); ip != "198.51.100.9" {
		t.Errorf("getClientIP = %q, want first forwarded IP", ip)
	}
}

func TestGetRateLimitKeyPrefersAPIKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-API-Key", "abc")

	if key := getRateLimitKey(req); key != "api:abc" {
		t.Errorf("key = %q, want api:abc", key)
	}

	req.Header.Del("X-API-Key")
	if key := getRateLimitKey(req); key != "ip:10.0.0.1" {
		t.Errorf("key = %q, want ip:10.0.0.1", key)
	}
}
