package health

import (
	"context"
	"sync"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

// ReviewCounter reports the review queue depth.
type ReviewCounter interface {
	PendingReviews(ctx context.Context) (int64, error)
}

// Monitor aggregates health status from the service's dependencies.
// Dependencies may be nil when not configured (memory mode, no redis).
type Monitor struct {
	db      Pinger
	redis   Pinger
	reviews ReviewCounter

	lastCheck  time.Time
	lastReport *Report
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor.
func NewMonitor(db, redis Pinger, reviews ReviewCounter) *Monitor {
	return &Monitor{
		db:      db,
		redis:   redis,
		reviews: reviews,
	}
}

// CheckHealth builds a health report.
func (m *Monitor) CheckHealth(ctx context.Context) *Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks to avoid hammering dependencies
	if time.Since(m.lastCheck) < 10*time.Second && m.lastReport != nil {
		return m.lastReport
	}

	report := &Report{
		SystemStatus: StatusHealthy,
		Components:   make(map[string]ComponentHealth),
	}

	m.checkComponent(ctx, report, "database", m.db, StatusCritical)
	m.checkComponent(ctx, report, "redis", m.redis, StatusDegraded)

	if m.reviews != nil {
		if pending, err := m.reviews.PendingReviews(ctx); err == nil {
			report.ReviewQueue = pending
		}
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}

// checkComponent pings one dependency and folds its state into the report.
// onFailure is the system status a failure escalates to: losing the audit
// store is critical, losing the review queue only degrades.
func (m *Monitor) checkComponent(
	ctx context.Context,
	report *Report,
	name string,
	p Pinger,
	onFailure SystemStatus,
) {
	if p == nil {
		return // not configured
	}

	ch := ComponentHealth{Component: name, Status: StatusHealthy}
	if err := p.Health(ctx); err != nil {
		ch.Status = onFailure
		ch.Detail = err.Error()
		if worse(onFailure, report.SystemStatus) {
			report.SystemStatus = onFailure
		}
	}
	report.Components[name] = ch
}

var statusRank = map[SystemStatus]int{
	StatusHealthy:  0,
	StatusDegraded: 1,
	StatusCritical: 2,
}

func worse(a, b SystemStatus) bool {
	return statusRank[a] > statusRank[b]
}
