// Package sessiongate provides client-session inactivity tracking and
// fixed-window rate limiting for Go applications.
//
// It has two independent, composable parts: a SessionTimer that detects
// user inactivity and drives a warning → timeout lifecycle, and a keyed
// Limiter that caps how often a caller may perform a sensitive action
// (login attempts, transfers, general API calls).
//
// # Session timer
//
// One SessionTimer is created per session and started at login. Interaction
// sources (whatever the host counts as evidence of use) call
// RecordActivity; a poll loop compares elapsed time against the configured
// thresholds and emits events:
//
//	timer, err := sessiongate.NewSessionTimer(sessiongate.TimerConfig{
//	    Timeout:       15 * time.Minute,
//	    WarningLead:   2 * time.Minute,
//	    CheckInterval: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	timer.On(sessiongate.EventWarning, func(payload interface{}) {
//	    fmt.Println("session expiring in", timer.FormattedRemaining())
//	})
//	timer.On(sessiongate.EventTimeout, func(interface{}) {
//	    logout()
//	})
//	timer.Start()
//
// A warning dialog that wants to keep the session alive calls
// Extend(fullTimeout); an explicit "continue" action calls Reset. Both
// recover an expired timer.
//
// The warning fires at most once per activity window and the timeout at
// most once per expiry, regardless of how often the poll loop runs, so the
// machine tolerates jittered timers.
//
// # Persistence
//
// The last-activity timestamp can be mirrored through a Storage
// collaborator so a host restart does not grant a fresh inactivity budget:
//
//	timer, err := sessiongate.NewSessionTimer(cfg,
//	    sessiongate.WithStorage(store.NewMemoryStore()),
//	)
//
// The store/ package ships in-memory and Redis backends. A nil Storage is a
// supported degraded mode: the timer simply runs in memory.
//
// # Rate limiting
//
// The Limiter implements a fixed-window counter per caller key. Window
// expiry is evaluated lazily on each query; no background timer is needed:
//
//	limiter, err := sessiongate.AuthPolicy.NewLimiter()
//	if !limiter.Allow(userID) {
//	    // surface "too many attempts"
//	}
//
// Three policies are published as part of the security contract: APIPolicy
// (100 requests/minute), AuthPolicy (5 attempts/5 minutes) and
// TransferPolicy (10 transfers/hour).
//
// Fixed-window counting resets the counter entirely at window boundaries,
// so a burst straddling a boundary can momentarily admit up to twice the
// ceiling across two adjacent windows. This is an accepted trade-off of the
// published policies, not a defect; the simplicity and O(1) cost are the
// point.
//
// # Events
//
// Event subscription is a plain observer list: On(event, handler) appends,
// emission is synchronous and in registration order, return values are
// ignored. Handlers run outside the internal lock and may call back into
// the timer.
//
// # Concurrency
//
// All operations on both components are safe for concurrent use and O(1)
// (Cleanup is an O(n) sweep). Nothing blocks: Allow, RecordActivity and
// State return immediately; expiry detection happens on the poll goroutine.
//
// # Testing
//
// Both components key their behavior off "now", so they accept an injected
// Clock (WithClock, WithLimiterClock) and tests drive a fake clock instead
// of sleeping.
package sessiongate
