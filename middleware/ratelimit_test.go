package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_AllowsUntilLimit(t *testing.T) {
	limiter, err := core.NewLimiter(time.Minute, 2)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}

	guard := NewRateLimit(RateLimitConfig{Limiter: limiter})
	handler := guard.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/v1/transfer", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("request %d status = %d, want 200", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
			t.Errorf("X-RateLimit-Limit = %q, want \"2\"", got)
		}
	}

	// Third request from the same client is throttled.
	req := httptest.NewRequest("POST", "/v1/transfer", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want \"0\"", got)
	}
	if got := rec.Header().Get("Retry-After"); got == "" {
		t.Error("Retry-After header missing on throttled response")
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] != "rate_limit_exceeded" {
		t.Errorf("error = %v, want rate_limit_exceeded", body["error"])
	}
}

func TestRateLimit_SeparateClientsSeparateQuotas(t *testing.T) {
	limiter, err := core.NewLimiter(time.Minute, 1)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}

	guard := NewRateLimit(RateLimitConfig{Limiter: limiter})
	handler := guard.Middleware(okHandler())

	first := httptest.NewRequest("GET", "/v1/accounts", nil)
	first.RemoteAddr = "10.0.0.1:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first client status = %d, want 200", rec.Code)
	}

	// Same client again: throttled.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("repeat request status = %d, want 429", rec.Code)
	}

	// A different client still has quota.
	second := httptest.NewRequest("GET", "/v1/accounts", nil)
	second.RemoteAddr = "10.0.0.2:1000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Errorf("second client status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_ForwardedForTakesPrecedence(t *testing.T) {
	limiter, err := core.NewLimiter(time.Minute, 1)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}

	guard := NewRateLimit(RateLimitConfig{Limiter: limiter})
	handler := guard.Middleware(okHandler())

	// Two requests through the same proxy but for different origin clients
	// must use separate quotas.
	for _, origin := range []string{"203.0.113.7", "203.0.113.8"} {
		req := httptest.NewRequest("GET", "/v1/accounts", nil)
		req.RemoteAddr = "10.0.0.99:4321"
		req.Header.Set("X-Forwarded-For", origin+", 10.0.0.99")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("origin %s status = %d, want 200", origin, rec.Code)
		}
	}
}

func TestRateLimit_CustomKeyFunc(t *testing.T) {
	limiter, err := core.NewLimiter(time.Minute, 1)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}

	guard := NewRateLimit(RateLimitConfig{
		Limiter: limiter,
		KeyFunc: func(r *http.Request) string {
			return r.Header.Get("X-User-ID")
		},
	})
	handler := guard.Middleware(okHandler())

	req := httptest.NewRequest("POST", "/v1/transfer", nil)
	req.Header.Set("X-User-ID", "user-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("repeat status = %d, want 429", rec.Code)
	}
}
