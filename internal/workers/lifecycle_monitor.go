package workers

import (
	"context"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/models/entities"
)

// pendingRequestsAlert is the backlog above which the monitor warns
const pendingRequestsAlert = 500

// StatsSource produces the lifecycle snapshot; *repositories.StatsRepo in production
type StatsSource interface {
	Snapshot(ctx context.Context) (*entities.LifecycleStats, error)
}

// LifecycleMonitor periodically refreshes the backlog gauges and logs a summary
type LifecycleMonitor struct {
	stats   StatsSource
	events  common.EventPublisher
	metrics *metrics.MetricsRegistry
}

func NewLifecycleMonitor(stats StatsSource, events common.EventPublisher, m *metrics.MetricsRegistry) *LifecycleMonitor {
	return &LifecycleMonitor{
		stats:   stats,
		events:  events,
		metrics: m,
	}
}

// Start runs until ctx is cancelled
func (m *LifecycleMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Lifecycle monitor started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.check(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Lifecycle monitor shutting down")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *LifecycleMonitor) check(ctx context.Context) {
	start := time.Now()
	defer func() {
		m.metrics.MonitorRunDuration.Observe(time.Since(start).Seconds())
	}()

	snapshot, err := m.stats.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.Error("Lifecycle monitor failed to load stats", "error", err)
		}
		return
	}

	pendingCandidates := snapshot.PendingApplications(string(constants.TrackCandidate))
	pendingMentors := snapshot.PendingApplications(string(constants.TrackMentor))
	pendingRequests := snapshot.PendingRequests()

	m.metrics.PendingApplications.WithLabelValues(string(constants.TrackCandidate)).Set(float64(pendingCandidates))
	m.metrics.PendingApplications.WithLabelValues(string(constants.TrackMentor)).Set(float64(pendingMentors))
	m.metrics.PendingRequests.Set(float64(pendingRequests))

	streamLen, err := m.events.Length(ctx)
	if err != nil {
		logging.Warn("Lifecycle monitor failed to read stream length", "error", err)
	} else {
		m.metrics.LifecycleStreamLength.Set(float64(streamLen))
	}

	logging.Info("Lifecycle backlog",
		"pending_candidate_applications", pendingCandidates,
		"pending_mentor_applications", pendingMentors,
		"pending_requests", pendingRequests,
		"roadmaps", snapshot.Roadmaps,
		"stream_length", streamLen,
	)

	if pendingRequests > pendingRequestsAlert {
		logging.Warn("Mentorship request backlog is high", "pending_requests", pendingRequests)
	}
}
