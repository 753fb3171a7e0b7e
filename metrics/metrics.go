// Package metrics tracks rate limit decisions and session lifecycle
// events for observability dashboards.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	core "github.com/yourusername/sessiongate/pkg/sessiongate"
)

// Metrics tracks rate limiting and session statistics
type Metrics struct {
	totalChecks   atomic.Int64
	allowedChecks atomic.Int64
	blockedChecks atomic.Int64

	// Session lifecycle counters
	warnings atomic.Int64
	timeouts atomic.Int64
	extends  atomic.Int64
	resets   atomic.Int64

	// Per-caller stats
	mu          sync.RWMutex
	callerStats map[string]*CallerStats
	startTime   time.Time
}

// CallerStats tracks statistics for a specific caller key
type CallerStats struct {
	CallerID      string
	TotalChecks   int64
	AllowedChecks int64
	BlockedChecks int64
	LastCheckAt   time.Time
	FirstCheckAt  time.Time
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		callerStats: make(map[string]*CallerStats),
		startTime:   time.Now(),
	}
}

// RecordCheck records a rate limit decision for a caller
func (m *Metrics) RecordCheck(callerID string, allowed bool) {
	m.totalChecks.Add(1)

	if allowed {
		m.allowedChecks.Add(1)
	} else {
		m.blockedChecks.Add(1)
	}

	// Update per-caller stats
	m.mu.Lock()
	defer m.mu.Unlock()

	stats, exists := m.callerStats[callerID]
	if !exists {
		stats = &CallerStats{
			CallerID:     callerID,
			FirstCheckAt: time.Now(),
		}
		m.callerStats[callerID] = stats
	}

	stats.TotalChecks++
	if allowed {
		stats.AllowedChecks++
	} else {
		stats.BlockedChecks++
	}
	stats.LastCheckAt = time.Now()
}

// ObserveTimer subscribes counters to a session timer's lifecycle events.
// Call before Start so nothing is missed.
func (m *Metrics) ObserveTimer(timer *core.SessionTimer) {
	timer.On(core.EventWarning, func(interface{}) { m.warnings.Add(1) })
	timer.On(core.EventTimeout, func(interface{}) { m.timeouts.Add(1) })
	timer.On(core.EventExtend, func(interface{}) { m.extends.Add(1) })
	timer.On(core.EventReset, func(interface{}) { m.resets.Add(1) })
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy caller stats
	topCallers := make([]*CallerStats, 0, len(m.callerStats))
	for _, stats := range m.callerStats {
		topCallers = append(topCallers, &CallerStats{
			CallerID:      stats.CallerID,
			TotalChecks:   stats.TotalChecks,
			AllowedChecks: stats.AllowedChecks,
			BlockedChecks: stats.BlockedChecks,
			LastCheckAt:   stats.LastCheckAt,
			FirstCheckAt:  stats.FirstCheckAt,
		})
	}

	// Sort by total checks (top 10)
	sortByTotalChecks(topCallers)
	if len(topCallers) > 10 {
		topCallers = topCallers[:10]
	}

	uptime := time.Since(m.startTime)

	return &Snapshot{
		TotalChecks:     m.totalChecks.Load(),
		AllowedChecks:   m.allowedChecks.Load(),
		BlockedChecks:   m.blockedChecks.Load(),
		SessionWarnings: m.warnings.Load(),
		SessionTimeouts: m.timeouts.Load(),
		SessionExtends:  m.extends.Load(),
		SessionResets:   m.resets.Load(),
		UniqueCallers:   int64(len(m.callerStats)),
		TopCallers:      topCallers,
		UptimeSeconds:   int64(uptime.Seconds()),
		StartTime:       m.startTime,
	}
}

// Snapshot represents a point-in-time view of metrics
type Snapshot struct {
	TotalChecks     int64          `json:"total_checks"`
	AllowedChecks   int64          `json:"allowed_checks"`
	BlockedChecks   int64          `json:"blocked_checks"`
	SessionWarnings int64          `json:"session_warnings"`
	SessionTimeouts int64          `json:"session_timeouts"`
	SessionExtends  int64          `json:"session_extends"`
	SessionResets   int64          `json:"session_resets"`
	UniqueCallers   int64          `json:"unique_callers"`
	TopCallers      []*CallerStats `json:"top_callers"`
	UptimeSeconds   int64          `json:"uptime_seconds"`
	StartTime       time.Time      `json:"start_time"`
}

// Helper to sort callers by total checks
func sortByTotalChecks(callers []*CallerStats) {
	for i := 0; i < len(callers)-1; i++ {
		for j := i + 1; j < len(callers); j++ {
			if callers[j].TotalChecks > callers[i].TotalChecks {
				callers[i], callers[j] = callers[j], callers[i]
			}
		}
	}
}
