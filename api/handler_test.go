package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

func newTestHandler(t *testing.T) (*Handler, *core.SessionTimer) {
	t.Helper()

	auth, err := core.NewLimiter(5*time.Minute, 2)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}
	api, err := core.NewLimiter(time.Minute, 100)
	if err != nil {
		t.Fatalf("NewLimiter() failed: %v", err)
	}

	timer, err := core.NewSessionTimer(core.TimerConfig{
		Timeout:       5 * time.Minute,
		WarningLead:   time.Minute,
		CheckInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewSessionTimer() failed: %v", err)
	}
	timer.Start()
	t.Cleanup(timer.Stop)

	return NewHandler(map[string]*core.Limiter{"auth": auth, "api": api}, timer, nil), timer
}

func TestHandler_CheckRateLimit(t *testing.T) {
	handler, _ := newTestHandler(t)

	check := func(body string) (*httptest.ResponseRecorder, CheckResponse) {
		req := httptest.NewRequest("POST", "/v1/check", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.CheckRateLimit(rec, req)

		var resp CheckResponse
		json.NewDecoder(rec.Body).Decode(&resp)
		return rec, resp
	}

	// Two attempts pass under the auth policy ceiling of 2.
	for i := 0; i < 2; i++ {
		rec, resp := check(`{"caller_id":"user-x","scope":"auth"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !resp.Allowed {
			t.Errorf("attempt %d allowed = false, want true", i+1)
		}
		if resp.Remaining != 1-i {
			t.Errorf("attempt %d remaining = %d, want %d", i+1, resp.Remaining, 1-i)
		}
	}

	// Third attempt is over the ceiling. The decision is data, not an HTTP
	// error: still 200.
	rec, resp := check(`{"caller_id":"user-x","scope":"auth"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Allowed {
		t.Error("third attempt allowed = true, want false")
	}
	if resp.Limit != 2 {
		t.Errorf("limit = %d, want 2", resp.Limit)
	}

	// Scope defaults to "api".
	_, resp = check(`{"caller_id":"user-x"}`)
	if resp.Scope != "api" {
		t.Errorf("scope = %q, want \"api\"", resp.Scope)
	}
	if !resp.Allowed {
		t.Error("api-scoped attempt should be allowed")
	}
}

func TestHandler_CheckRateLimit_Errors(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "wrong method",
			method:     "GET",
			body:       "",
			wantStatus: http.StatusMethodNotAllowed,
			wantError:  "method_not_allowed",
		},
		{
			name:       "invalid json",
			method:     "POST",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "missing caller id",
			method:     "POST",
			body:       `{"scope":"auth"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "missing_caller_id",
		},
		{
			name:       "unknown scope",
			method:     "POST",
			body:       `{"caller_id":"user-x","scope":"nope"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown_scope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/check", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.CheckRateLimit(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			json.NewDecoder(rec.Body).Decode(&resp)
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestHandler_SessionState(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/v1/session", nil)
	rec := httptest.NewRecorder()
	handler.SessionState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Active {
		t.Error("active = false for a freshly started session")
	}
	if resp.ShowWarning {
		t.Error("show_warning = true for a freshly started session")
	}
	if resp.RemainingMs <= 0 || resp.RemainingMs > (5*time.Minute).Milliseconds() {
		t.Errorf("remaining_ms = %d, want within (0, 300000]", resp.RemainingMs)
	}
	if resp.Display == "" {
		t.Error("display should not be empty")
	}
}

func TestHandler_ExtendSession(t *testing.T) {
	handler, timer := newTestHandler(t)

	req := httptest.NewRequest("POST", "/v1/session/extend", strings.NewReader(`{"duration_ms":2000}`))
	rec := httptest.NewRecorder()
	handler.ExtendSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Remaining life is now the granted 2 seconds, not the full budget.
	if got := timer.State().Remaining; got > 2*time.Second || got < time.Second {
		t.Errorf("Remaining after extend = %v, want about 2s", got)
	}
}

func TestHandler_ExtendSession_InvalidDuration(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/v1/session/extend", strings.NewReader(`{"duration_ms":0}`))
	rec := httptest.NewRecorder()
	handler.ExtendSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_ResetSession(t *testing.T) {
	handler, timer := newTestHandler(t)

	timer.Extend(2 * time.Second)

	req := httptest.NewRequest("POST", "/v1/session/reset", nil)
	rec := httptest.NewRecorder()
	handler.ResetSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Active {
		t.Error("active = false after reset")
	}
	if got := timer.State().Remaining; got < 4*time.Minute {
		t.Errorf("Remaining after reset = %v, want close to the full 5m budget", got)
	}
}
