package sessiongate

import (
	"testing"
	"time"
)

func TestEmitter_HandlersRunInRegistrationOrder(t *testing.T) {
	var e emitter
	var order []int

	e.on(EventWarning, func(interface{}) { order = append(order, 1) })
	e.on(EventWarning, func(interface{}) { order = append(order, 2) })
	e.on(EventWarning, func(interface{}) { order = append(order, 3) })

	e.emit(EventWarning, nil)

	if len(order) != 3 {
		t.Fatalf("invoked %d handlers, want 3", len(order))
	}
	for i, got := range order {
		if got != i+1 {
			t.Errorf("handler at position %d was registration %d, want %d", i, got, i+1)
		}
	}
}

func TestEmitter_PayloadReachesEveryHandler(t *testing.T) {
	var e emitter
	var got []interface{}

	e.on(EventExtend, func(payload interface{}) { got = append(got, payload) })
	e.on(EventExtend, func(payload interface{}) { got = append(got, payload) })

	e.emit(EventExtend, 3*time.Second)

	if len(got) != 2 {
		t.Fatalf("invoked %d handlers, want 2", len(got))
	}
	for i, payload := range got {
		if payload != 3*time.Second {
			t.Errorf("handler %d payload = %v, want 3s", i, payload)
		}
	}
}

func TestEmitter_UnsubscribedEventIsNoOp(t *testing.T) {
	var e emitter

	// Must not panic on an event with no subscribers, including on a
	// zero-value emitter.
	e.emit(EventTimeout, nil)

	e.on(EventWarning, func(interface{}) {
		t.Error("warning handler invoked for timeout emission")
	})
	e.emit(EventTimeout, nil)
}

func TestEmitter_NilHandlerIgnored(t *testing.T) {
	var e emitter
	e.on(EventStart, nil)

	// Emitting must not invoke (or panic on) the nil registration.
	e.emit(EventStart, nil)
}

func TestEmitter_EventsAreIndependent(t *testing.T) {
	var e emitter
	counts := make(map[Event]int)

	for _, event := range []Event{EventStart, EventStop, EventReset, EventExtend, EventWarning, EventTimeout} {
		event := event
		e.on(event, func(interface{}) { counts[event]++ })
	}

	e.emit(EventWarning, nil)
	e.emit(EventWarning, nil)
	e.emit(EventTimeout, nil)

	if counts[EventWarning] != 2 {
		t.Errorf("warning count = %d, want 2", counts[EventWarning])
	}
	if counts[EventTimeout] != 1 {
		t.Errorf("timeout count = %d, want 1", counts[EventTimeout])
	}
	if counts[EventStart] != 0 || counts[EventStop] != 0 {
		t.Error("unrelated events received emissions")
	}
}
