package middleware

import (
	"encoding/json"
	"net/http"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

// SessionGuard treats each authenticated request as evidence of session
// use: an active session gets its activity recorded, an expired or stopped
// one is rejected before the handler runs. It is the server-side rendering
// of the interaction listeners a browser host would register.
type SessionGuard struct {
	timer *core.SessionTimer
}

// NewSessionGuard creates session tracking middleware around a timer.
func NewSessionGuard(timer *core.SessionTimer) *SessionGuard {
	return &SessionGuard{timer: timer}
}

// Middleware wraps an http.Handler with the session check.
func (g *SessionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := g.timer.State()
		if !state.Active {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "session_expired",
				"message": "Your session has expired. Please sign in again.",
			})
			return
		}

		// The request itself counts as activity.
		g.timer.RecordActivity()
		next.ServeHTTP(w, r)
	})
}
