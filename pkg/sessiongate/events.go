package sessiongate

import "sync"

// Event names emitted by the SessionTimer lifecycle.
type Event string

const (
	// EventStart fires when monitoring begins.
	EventStart Event = "start"

	// EventStop fires when monitoring is stopped. It is emitted even when the
	// timer was not running, matching the original contract callers depend on.
	EventStop Event = "stop"

	// EventReset fires when the caller explicitly restarts the countdown.
	EventReset Event = "reset"

	// EventExtend fires when the session is granted extra life without a real
	// interaction. The payload is the granted time.Duration.
	EventExtend Event = "extend"

	// EventWarning fires once per activity window when the remaining time
	// enters the warning band. The payload is the remaining time.Duration.
	EventWarning Event = "warning"

	// EventTimeout fires once when the inactivity budget is exhausted.
	EventTimeout Event = "timeout"
)

// Handler receives lifecycle events. The payload is event-specific and may
// be nil; handlers must not block for long since emission is synchronous.
type Handler func(payload interface{})

// emitter is a minimal publish/subscribe list. Handlers for an event are
// invoked synchronously in registration order; return values are ignored.
// It deliberately avoids channels: subscribers are registered once at setup
// and emission happens on whichever goroutine triggered the condition.
type emitter struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

// on registers a handler for the given event. Any number of handlers may be
// registered per event.
func (e *emitter) on(event Event, h Handler) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[Event][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], h)
}

// emit invokes every handler registered for the event, in registration
// order. Emitting an event nobody subscribed to is a no-op.
func (e *emitter) emit(event Event, payload interface{}) {
	e.mu.RLock()
	handlers := e.handlers[event]
	e.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}
