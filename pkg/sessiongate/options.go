package sessiongate

import "fmt"

// TimerOption is a functional option for configuring a SessionTimer.
type TimerOption func(*SessionTimer) error

// WithClock sets the timer's time source. Defaults to the system clock.
func WithClock(c Clock) TimerOption {
	return func(t *SessionTimer) error {
		if c == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		t.clock = c
		return nil
	}
}

// WithStorage sets the persistence collaborator for the last-activity
// timestamp. Without it the timer keeps state in memory only, which is a
// supported degraded mode, not an error.
func WithStorage(s Storage) TimerOption {
	return func(t *SessionTimer) error {
		t.storage = s
		return nil
	}
}

// WithStorageKey overrides the key the activity timestamp is stored under.
// Hosts running several sessions against one backend namespace them this
// way; the default is DefaultStorageKey.
func WithStorageKey(key string) TimerOption {
	return func(t *SessionTimer) error {
		if key == "" {
			return fmt.Errorf("%w: storage key cannot be empty", ErrInvalidConfig)
		}
		t.storageKey = key
		return nil
	}
}

// LimiterOption is a functional option for configuring a Limiter.
type LimiterOption func(*Limiter) error

// WithLimiterClock sets the limiter's time source. Defaults to the system
// clock.
func WithLimiterClock(c Clock) LimiterOption {
	return func(l *Limiter) error {
		if c == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		l.clock = c
		return nil
	}
}
