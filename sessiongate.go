package sessiongate

import (
	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

// Re-export main types for convenience
type (
	Limiter      = core.Limiter
	Decision     = core.Decision
	Policy       = core.Policy
	SessionTimer = core.SessionTimer
	TimerConfig  = core.TimerConfig
	TimerState   = core.TimerState
	Storage      = core.Storage
	Clock        = core.Clock
	Event        = core.Event
	Handler      = core.Handler
)

// Re-export constructors and named policies
var (
	NewLimiter      = core.NewLimiter
	NewSessionTimer = core.NewSessionTimer
	APIPolicy       = core.APIPolicy
	AuthPolicy      = core.AuthPolicy
	TransferPolicy  = core.TransferPolicy
)

// Re-export lifecycle event names
const (
	EventStart   = core.EventStart
	EventStop    = core.EventStop
	EventReset   = core.EventReset
	EventExtend  = core.EventExtend
	EventWarning = core.EventWarning
	EventTimeout = core.EventTimeout
)
