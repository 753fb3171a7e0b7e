// Package middleware provides HTTP guards built on the sessiongate core:
// a rate-limit guard for sensitive request paths and a session guard that
// records activity and rejects expired sessions.
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

// KeyFunc extracts the caller key from the request. The key is supplied by
// the caller's identity (user id, IP, API key), never generated here.
type KeyFunc func(*http.Request) string

// RateLimit guards a request path with a fixed-window limiter. Call sites
// construct one per policy (api/auth/transfer) and share the underlying
// limiter for the life of the process.
type RateLimit struct {
	limiter *core.Limiter
	keyFunc KeyFunc
}

// RateLimitConfig for creating a rate limit guard
type RateLimitConfig struct {
	Limiter *core.Limiter // Required: the policy limiter to consult
	KeyFunc KeyFunc       // Optional: custom key extraction (defaults to client IP)
}

// NewRateLimit creates rate limiting middleware around an existing limiter.
func NewRateLimit(config RateLimitConfig) *RateLimit {
	if config.KeyFunc == nil {
		config.KeyFunc = defaultKeyFunc
	}

	return &RateLimit{
		limiter: config.Limiter,
		keyFunc: config.KeyFunc,
	}
}

// defaultKeyFunc extracts the caller key from the client IP address
func defaultKeyFunc(r *http.Request) string {
	// Try X-Forwarded-For first (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Middleware wraps an http.Handler with the rate limit check. Denied
// requests get 429 with a Retry-After hint; quota headers are set either
// way.
func (rl *RateLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)

		decision := rl.limiter.Check(key)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))

		if !decision.Allowed {
			retryAfter := time.Until(decision.ResetAt)
			retryAfterSec := int64(retryAfter / time.Second)
			if retryAfterSec <= 0 {
				retryAfterSec = 1
			}
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", decision.ResetAt.Unix()))
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSec))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":        "rate_limit_exceeded",
				"message":      "Too many attempts. Please try again later.",
				"retryAfterMs": retryAfter.Milliseconds(),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
