package sessiongate

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNonPositiveWindow is returned when the rate limit window is zero or negative
	ErrNonPositiveWindow = errors.New("rate limit window must be positive")

	// ErrNonPositiveLimit is returned when the request ceiling is zero or negative
	ErrNonPositiveLimit = errors.New("max requests must be positive")

	// ErrNonPositiveTimeout is returned when the session timeout is zero or negative
	ErrNonPositiveTimeout = errors.New("session timeout must be positive")

	// ErrInvalidWarningLead is returned when the warning lead is not strictly
	// between zero and the session timeout
	ErrInvalidWarningLead = errors.New("warning lead must be positive and shorter than the timeout")

	// ErrNonPositiveInterval is returned when the check interval is zero or negative
	ErrNonPositiveInterval = errors.New("check interval must be positive")
)
