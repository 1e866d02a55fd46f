package monitor

import (
	"sync"
	"time"
)

// Status represents the overall health state of the daemon.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Report contains the full health report served by the HTTP surface.
type Report struct {
	Status      Status  `json:"status"`
	Network     string  `json:"network"`
	BlockNumber uint64  `json:"block_number"`
	SampleID    string  `json:"sample_id,omitempty"`
	SampleAge   float64 `json:"sample_age_seconds"`
	LastError   string  `json:"last_error,omitempty"`
}

// HealthMonitor derives a health status from the sampler's latest round:
// healthy while samples stay fresh, degraded once the newest sample goes
// stale, critical when the node stopped answering.
type HealthMonitor struct {
	sampler *Sampler

	mu         sync.Mutex
	lastCheck  time.Time
	lastReport Report
}

// NewHealthMonitor creates a health monitor over the given sampler.
func NewHealthMonitor(sampler *Sampler) *HealthMonitor {
	return &HealthMonitor{sampler: sampler}
}

// CheckHealth evaluates the current health report.
func (m *HealthMonitor) CheckHealth() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks to avoid recomputing on every probe
	if time.Since(m.lastCheck) < time.Second && m.lastReport.Status != "" {
		return m.lastReport
	}

	report := Report{
		Status:  StatusHealthy,
		Network: string(m.sampler.cfg.Network),
	}

	last := m.sampler.LastSample()
	lastErr := m.sampler.LastError()
	staleAfter := 3 * m.sampler.Interval()

	switch {
	case lastErr != nil:
		report.Status = StatusCritical
		report.LastError = lastErr.Error()
	case last == nil:
		// No round has completed yet
		report.Status = StatusDegraded
	case last.Age() > staleAfter:
		report.Status = StatusDegraded
	}

	if last != nil {
		report.BlockNumber = last.BlockNumber
		report.SampleID = last.ID.String()
		report.SampleAge = last.Age().Seconds()
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
