// Package api exposes JSON endpoints over the sessiongate core: rate limit
// checks for caller keys and state/controls for the session timer.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

// Handler serves rate limit checks and session state
type Handler struct {
	limiters map[string]*core.Limiter
	timer    *core.SessionTimer
	metrics  MetricsRecorder
}

// MetricsRecorder defines the interface for recording metrics
type MetricsRecorder interface {
	RecordCheck(callerID string, allowed bool)
}

// NewHandler creates a new API handler. limiters maps policy scope names
// ("api", "auth", "transfer") to their process-wide limiter instances.
func NewHandler(limiters map[string]*core.Limiter, timer *core.SessionTimer, metrics MetricsRecorder) *Handler {
	return &Handler{
		limiters: limiters,
		timer:    timer,
		metrics:  metrics,
	}
}

// CheckRequest represents the incoming rate limit check request
type CheckRequest struct {
	CallerID string `json:"caller_id"`       // Required: caller key (user ID, IP, API key)
	Scope    string `json:"scope,omitempty"` // Policy scope; defaults to "api"
}

// CheckResponse represents the rate limit check response
type CheckResponse struct {
	Allowed   bool   `json:"allowed"`   // Whether the attempt is admitted
	Remaining int    `json:"remaining"` // Attempts left in the current window
	Limit     int    `json:"limit"`     // Per-window ceiling
	ResetAt   int64  `json:"reset_at"`  // Unix timestamp when the window ends
	Scope     string `json:"scope"`     // Policy scope that was consulted
}

// SessionResponse represents the session timer state
type SessionResponse struct {
	LastActivity int64  `json:"last_activity"` // Unix milliseconds
	Active       bool   `json:"active"`
	RemainingMs  int64  `json:"remaining_ms"`
	ShowWarning  bool   `json:"show_warning"`
	Display      string `json:"display"` // Remaining time as m:ss
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CheckRateLimit handles POST /v1/check requests
func (h *Handler) CheckRateLimit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only POST requests are allowed")
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.CallerID == "" {
		h.sendError(w, http.StatusBadRequest, "missing_caller_id", "caller_id is required")
		return
	}
	if req.Scope == "" {
		req.Scope = "api"
	}

	limiter, ok := h.limiters[req.Scope]
	if !ok {
		h.sendError(w, http.StatusBadRequest, "unknown_scope", "No rate limit policy for scope: "+req.Scope)
		return
	}

	decision := limiter.Check(req.CallerID)
	if h.metrics != nil {
		h.metrics.RecordCheck(req.CallerID, decision.Allowed)
	}

	h.sendJSON(w, http.StatusOK, CheckResponse{
		Allowed:   decision.Allowed,
		Remaining: decision.Remaining,
		Limit:     decision.Limit,
		ResetAt:   decision.ResetAt.Unix(),
		Scope:     req.Scope,
	})
}

// SessionState handles GET /v1/session requests
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only GET requests are allowed")
		return
	}

	h.sendJSON(w, http.StatusOK, h.sessionResponse())
}

// ExtendRequest carries the extra life to grant the session
type ExtendRequest struct {
	DurationMs int64 `json:"duration_ms"`
}

// ExtendSession handles POST /v1/session/extend requests
func (h *Handler) ExtendSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only POST requests are allowed")
		return
	}

	var req ExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.DurationMs <= 0 {
		h.sendError(w, http.StatusBadRequest, "invalid_duration", "duration_ms must be positive")
		return
	}

	h.timer.Extend(time.Duration(req.DurationMs) * time.Millisecond)
	h.sendJSON(w, http.StatusOK, h.sessionResponse())
}

// ResetSession handles POST /v1/session/reset requests
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only POST requests are allowed")
		return
	}

	h.timer.Reset()
	h.sendJSON(w, http.StatusOK, h.sessionResponse())
}

func (h *Handler) sessionResponse() SessionResponse {
	state := h.timer.State()
	return SessionResponse{
		LastActivity: state.LastActivity.UnixMilli(),
		Active:       state.Active,
		RemainingMs:  state.Remaining.Milliseconds(),
		ShowWarning:  state.ShowWarning,
		Display:      h.timer.FormattedRemaining(),
	}
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{Error: code, Message: message})
}
