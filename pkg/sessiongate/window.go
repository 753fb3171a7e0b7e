package sessiongate

import "time"

// WindowState is the counter for a single caller key within one fixed
// window. Entries are created lazily on first check and replaced wholesale
// once the window has elapsed.
type WindowState struct {
	Count   int       `json:"count"`    // Requests accepted in the current window
	ResetAt time.Time `json:"reset_at"` // When the current window ends
}

// expired reports whether the window has elapsed at the given instant.
func (s *WindowState) expired(now time.Time) bool {
	return !now.Before(s.ResetAt)
}

// Decision contains the result of a rate limit check.
type Decision struct {
	// Allowed indicates whether the request should proceed
	Allowed bool

	// Remaining is the number of requests left in the current window
	Remaining int

	// Limit is the request ceiling per window
	Limit int

	// ResetAt is when the current window ends and the counter restarts
	ResetAt time.Time

	// Key is the caller key that was checked
	Key string
}

// fixedWindow implements the fixed-window counting algorithm. A counter
// resets entirely at window boundaries, so bursts straddling a boundary can
// momentarily admit up to twice the ceiling across two adjacent windows.
// That trade-off is part of the published policy contract; do not swap in a
// sliding window without changing the contract.
type fixedWindow struct {
	window time.Duration
	max    int
}

// check applies one request attempt against the given state at instant now.
// A nil state means the key has never been seen. It returns the updated
// state and the decision.
func (fw fixedWindow) check(state *WindowState, now time.Time) (*WindowState, Decision) {
	// First sighting or stale window: start fresh and admit.
	if state == nil || state.expired(now) {
		state = &WindowState{
			Count:   1,
			ResetAt: now.Add(fw.window),
		}
		return state, Decision{
			Allowed:   true,
			Remaining: fw.max - 1,
			Limit:     fw.max,
			ResetAt:   state.ResetAt,
		}
	}

	// At the ceiling the count is not incremented further, so remaining-count
	// queries stay accurate while the caller is being throttled.
	if state.Count >= fw.max {
		return state, Decision{
			Allowed:   false,
			Remaining: 0,
			Limit:     fw.max,
			ResetAt:   state.ResetAt,
		}
	}

	state.Count++
	return state, Decision{
		Allowed:   true,
		Remaining: fw.max - state.Count,
		Limit:     fw.max,
		ResetAt:   state.ResetAt,
	}
}

// peek computes the decision that check would return without mutating
// anything. Used by read-only queries.
func (fw fixedWindow) peek(state *WindowState, now time.Time) Decision {
	if state == nil || state.expired(now) {
		return Decision{
			Allowed:   true,
			Remaining: fw.max,
			Limit:     fw.max,
			ResetAt:   now.Add(fw.window),
		}
	}

	remaining := fw.max - state.Count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Limit:     fw.max,
		ResetAt:   state.ResetAt,
	}
}
