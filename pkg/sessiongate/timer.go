package sessiongate

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// DefaultStorageKey is where the last-activity timestamp is mirrored in the
// Storage collaborator, as milliseconds since the Unix epoch. Only the
// session timer writes this key.
const DefaultStorageKey = "session_last_activity"

// Storage is the durable key-value capability the timer persists its
// last-activity timestamp through, so a host restart within the same
// environment does not reset the countdown. A nil Storage is valid: the
// timer then runs purely in memory. Implementations must not panic; lookup
// misses and backend failures are both reported as a plain "not there".
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// TimerConfig holds the three durations that shape the inactivity state
// machine.
type TimerConfig struct {
	// Timeout is the total inactivity budget before the session expires.
	Timeout time.Duration

	// WarningLead is how long before expiry the warning event fires.
	// Must be strictly between zero and Timeout.
	WarningLead time.Duration

	// CheckInterval is the polling cadence for expiry detection.
	CheckInterval time.Duration
}

// Validate checks the invariant 0 < WarningLead < Timeout and that the
// polling interval is positive.
func (c TimerConfig) Validate() error {
	if c.Timeout <= 0 {
		return ErrNonPositiveTimeout
	}
	if c.WarningLead <= 0 || c.WarningLead >= c.Timeout {
		return ErrInvalidWarningLead
	}
	if c.CheckInterval <= 0 {
		return ErrNonPositiveInterval
	}
	return nil
}

// TimerState is a point-in-time snapshot computed from the current clock
// reading.
type TimerState struct {
	// LastActivity is the instant of the most recent recorded interaction.
	LastActivity time.Time

	// Active is true while monitoring is running and the budget is not
	// exhausted.
	Active bool

	// Remaining is the time left before expiry, floored at zero.
	Remaining time.Duration

	// ShowWarning is true once Remaining has crossed into the warning band.
	ShowWarning bool
}

// SessionTimer detects user inactivity and drives a warning → timeout
// lifecycle. It is a small state machine: running → warning band → expired,
// with any recorded activity moving it back to the start of the budget.
// It emits lifecycle events (see Event) and stays free of UI concerns; the
// host wires interaction sources to RecordActivity and subscribes a warning
// dialog and an auto-logout handler to the events.
//
// All methods are safe for concurrent use. Event handlers run synchronously
// on the goroutine that triggered the condition, outside the internal lock,
// so a handler may call back into the timer (a warning handler calling
// Extend is the expected shape).
type SessionTimer struct {
	cfg        TimerConfig
	clock      Clock
	storage    Storage
	storageKey string
	events     emitter

	mu           sync.Mutex
	lastActivity time.Time
	running      bool
	warningFired bool
	expired      bool
	done         chan struct{}
}

// NewSessionTimer creates a timer with the given configuration. It fails
// fast on invalid durations. The timer does not start monitoring until
// Start is called.
func NewSessionTimer(cfg TimerConfig, opts ...TimerOption) (*SessionTimer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &SessionTimer{
		cfg:        cfg,
		clock:      systemClock{},
		storageKey: DefaultStorageKey,
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// On subscribes a handler to a lifecycle event. Handlers are invoked in
// registration order.
func (t *SessionTimer) On(event Event, h Handler) {
	t.events.on(event, h)
}

// Start begins monitoring. It loads the persisted last-activity timestamp
// if one exists, so a restart does not grant a fresh budget; otherwise the
// budget starts now. Exactly one polling goroutine runs while the timer is
// running; calling Start again while running is a no-op.
func (t *SessionTimer) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}

	t.lastActivity = t.loadLastActivity()
	t.warningFired = false
	t.expired = false
	t.running = true
	t.done = make(chan struct{})
	go t.poll(t.done)
	t.mu.Unlock()

	t.events.emit(EventStart, nil)
}

// Stop cancels the polling goroutine. It is safe to call when not running;
// the stop event is emitted either way, which callers rely on for teardown
// bookkeeping.
func (t *SessionTimer) Stop() {
	t.mu.Lock()
	if t.running {
		close(t.done)
		t.done = nil
		t.running = false
	}
	t.mu.Unlock()

	t.events.emit(EventStop, nil)
}

// RecordActivity marks the session as in active use right now: the budget
// restarts, a pending warning is cleared, and an expired timer recovers.
// Interaction sources call this on every user gesture; it is also valid to
// call explicitly.
func (t *SessionTimer) RecordActivity() {
	t.mu.Lock()
	t.touch(t.clock.Now())
	t.mu.Unlock()
}

// Reset is RecordActivity plus an explicit reset event. It is the
// intentional "user chose to continue the session" API, as opposed to the
// passive activity signal.
func (t *SessionTimer) Reset() {
	t.mu.Lock()
	t.touch(t.clock.Now())
	t.mu.Unlock()

	t.events.emit(EventReset, nil)
}

// Extend grants the session d of remaining life without a real
// interaction, as if only Timeout-d of the budget had been spent. Used when
// the user confirms "stay signed in" from a warning dialog, typically with
// d equal to the full timeout. d is clamped to (0, Timeout]; a non-positive
// d is ignored.
func (t *SessionTimer) Extend(d time.Duration) {
	if d <= 0 {
		return
	}
	if d > t.cfg.Timeout {
		d = t.cfg.Timeout
	}

	t.mu.Lock()
	t.touch(t.clock.Now().Add(d - t.cfg.Timeout))
	t.mu.Unlock()

	t.events.emit(EventExtend, d)
}

// State returns a snapshot computed from the current clock reading.
func (t *SessionTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := t.remaining(t.clock.Now())
	return TimerState{
		LastActivity: t.lastActivity,
		Active:       t.running && !t.expired && remaining > 0,
		Remaining:    remaining,
		ShowWarning:  remaining > 0 && remaining <= t.cfg.WarningLead,
	}
}

// FormattedRemaining renders the remaining time as m:ss for display,
// e.g. "2:15". Partial seconds round up so the display never shows 0:00
// while time is actually left.
func (t *SessionTimer) FormattedRemaining() string {
	t.mu.Lock()
	remaining := t.remaining(t.clock.Now())
	t.mu.Unlock()

	secs := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// check runs one poll step: at most one warning per activity window, at
// most one timeout per expiry. Once expired, further checks are inert until
// activity, Reset, or Extend recovers the timer, so the cadence of the poll
// loop never multiplies events.
func (t *SessionTimer) check() {
	t.mu.Lock()
	if !t.running || t.expired {
		t.mu.Unlock()
		return
	}

	remaining := t.remaining(t.clock.Now())

	var event Event
	var payload interface{}
	switch {
	case remaining <= 0:
		t.expired = true
		event = EventTimeout
	case remaining <= t.cfg.WarningLead && !t.warningFired:
		t.warningFired = true
		event = EventWarning
		payload = remaining
	}
	t.mu.Unlock()

	if event != "" {
		t.events.emit(event, payload)
	}
}

// poll drives check on the configured cadence until the done channel
// closes. The state machine only needs checks to happen at least once
// before full expiry, so a jittered or delayed tick cannot corrupt it.
func (t *SessionTimer) poll(done chan struct{}) {
	ticker := time.NewTicker(t.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.check()
		case <-done:
			return
		}
	}
}

// touch records ts as the last activity instant and persists it. Must be
// called with t.mu held.
func (t *SessionTimer) touch(ts time.Time) {
	t.lastActivity = ts
	t.warningFired = false
	t.expired = false
	if t.storage != nil {
		t.storage.Set(t.storageKey, strconv.FormatInt(ts.UnixMilli(), 10))
	}
}

// remaining computes the time left before expiry at instant now, floored at
// zero. Must be called with t.mu held.
func (t *SessionTimer) remaining(now time.Time) time.Duration {
	remaining := t.cfg.Timeout - now.Sub(t.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// loadLastActivity reads the persisted timestamp, falling back to the
// current instant when the storage is absent, empty, or holds garbage.
// Must be called with t.mu held.
func (t *SessionTimer) loadLastActivity() time.Time {
	now := t.clock.Now()
	if t.storage == nil {
		return now
	}

	raw, ok := t.storage.Get(t.storageKey)
	if !ok {
		return now
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return now
	}
	return time.UnixMilli(ms)
}
