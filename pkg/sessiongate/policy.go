package sessiongate

import "time"

// Policy pairs a window duration with the number of requests admitted
// inside it.
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

// The named policies below are user-facing security policy: other code and
// support documentation quote these exact thresholds, so they must not be
// changed for compatibility reasons. Each call site constructs its limiter
// once at startup and keeps it for the life of the process.
var (
	// APIPolicy bounds general API traffic per caller.
	APIPolicy = Policy{Window: time.Minute, MaxRequests: 100}

	// AuthPolicy bounds login attempts per caller.
	AuthPolicy = Policy{Window: 5 * time.Minute, MaxRequests: 5}

	// TransferPolicy bounds money-transfer attempts per caller.
	TransferPolicy = Policy{Window: time.Hour, MaxRequests: 10}
)

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	if p.Window <= 0 {
		return ErrNonPositiveWindow
	}
	if p.MaxRequests <= 0 {
		return ErrNonPositiveLimit
	}
	return nil
}

// NewLimiter builds a limiter enforcing this policy.
func (p Policy) NewLimiter(opts ...LimiterOption) (*Limiter, error) {
	return NewLimiter(p.Window, p.MaxRequests, opts...)
}
