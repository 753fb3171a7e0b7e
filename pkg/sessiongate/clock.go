package sessiongate

import "time"

// Clock abstracts wall-clock access. Both the session timer and the rate
// limiter key all behavior off "now", so tests inject a fake clock instead
// of sleeping in real time.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
