package sessiongate

import (
	"sync"
	"time"
)

// Limiter is a keyed fixed-window rate limiter. Each caller key gets an
// independent counter that resets once its window elapses. Window expiry is
// evaluated lazily on each query; no background timer is required for
// correctness. All methods are safe for concurrent use.
type Limiter struct {
	algo    fixedWindow
	clock   Clock
	mu      sync.Mutex
	entries map[string]*WindowState
}

// NewLimiter creates a rate limiter that admits at most maxRequests per key
// within each window. It fails fast on non-positive parameters since those
// indicate a programming error, not a runtime condition.
//
// Example: NewLimiter(5*time.Minute, 5) caps a caller at 5 attempts per
// 5-minute window.
func NewLimiter(window time.Duration, maxRequests int, opts ...LimiterOption) (*Limiter, error) {
	if window <= 0 {
		return nil, ErrNonPositiveWindow
	}
	if maxRequests <= 0 {
		return nil, ErrNonPositiveLimit
	}

	l := &Limiter{
		algo:    fixedWindow{window: window, max: maxRequests},
		clock:   systemClock{},
		entries: make(map[string]*WindowState),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Allow reports whether one more request for key is admitted right now.
// Unknown keys and keys whose window has elapsed start a fresh window with
// count 1. Allow never fails: a key the limiter has not seen is simply a
// caller with full quota.
func (l *Limiter) Allow(key string) bool {
	return l.Check(key).Allowed
}

// Check is Allow with the full decision attached, for callers that surface
// quota headers or retry hints.
func (l *Limiter) Check(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, decision := l.algo.check(l.entries[key], l.clock.Now())
	l.entries[key] = state
	decision.Key = key
	return decision
}

// Remaining returns how many requests key may still make in its current
// window. It is read-only: querying never creates or advances an entry.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.algo.peek(l.entries[key], l.clock.Now()).Remaining
}

// ResetTime returns when the current window for key ends. For a key with no
// live entry the window has not started, so the answer is now + window.
func (l *Limiter) ResetTime(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.algo.peek(l.entries[key], l.clock.Now()).ResetAt
}

// Cleanup removes every entry whose window has already elapsed and returns
// the number removed. Allow handles stale entries by itself; Cleanup exists
// only to bound memory growth and is intended to be called periodically by
// the host.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	removed := 0
	for key, state := range l.entries {
		if state.expired(now) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// StartBackgroundCleanup starts a goroutine that calls Cleanup on the given
// interval. Call the returned function to stop it.
func (l *Limiter) StartBackgroundCleanup(interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

// Len returns the number of live entries, expired or not.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Limit returns the per-window request ceiling.
func (l *Limiter) Limit() int {
	return l.algo.max
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.algo.window
}
