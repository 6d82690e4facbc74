package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/models/entities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Mock StatsSource
type mockStats struct {
	calls        atomic.Int32
	snapshotFunc func(ctx context.Context) (*entities.LifecycleStats, error)
}

func (m *mockStats) Snapshot(ctx context.Context) (*entities.LifecycleStats, error) {
	m.calls.Add(1)
	return m.snapshotFunc(ctx)
}

type fixedLengthPublisher struct {
	common.NoopPublisher
	length int64
}

func (p fixedLengthPublisher) Length(context.Context) (int64, error) { return p.length, nil }

func sampleStats() *entities.LifecycleStats {
	return &entities.LifecycleStats{
		Applications: []entities.ApplicationCount{
			{Track: "candidate", Status: "pending", Total: 4},
			{Track: "candidate", Status: "approved", Total: 10},
			{Track: "mentor", Status: "pending", Total: 2},
		},
		Requests: []entities.RequestCount{
			{Status: "pending", Total: 7},
			{Status: "accepted", Total: 3},
		},
		Roadmaps: 3,
	}
}

func TestLifecycleMonitor_UpdatesGauges(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	stats := &mockStats{snapshotFunc: func(context.Context) (*entities.LifecycleStats, error) {
		return sampleStats(), nil
	}}

	monitor := NewLifecycleMonitor(stats, fixedLengthPublisher{length: 42}, m)
	monitor.check(context.Background())

	if got := testutil.ToFloat64(m.PendingApplications.WithLabelValues("candidate")); got != 4 {
		t.Errorf("Expected 4 pending candidate applications, got %v", got)
	}
	if got := testutil.ToFloat64(m.PendingApplications.WithLabelValues("mentor")); got != 2 {
		t.Errorf("Expected 2 pending mentor applications, got %v", got)
	}
	if got := testutil.ToFloat64(m.PendingRequests); got != 7 {
		t.Errorf("Expected 7 pending requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.LifecycleStreamLength); got != 42 {
		t.Errorf("Expected stream length 42, got %v", got)
	}
}

func TestLifecycleMonitor_KeepsGaugesOnError(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	m.PendingRequests.Set(9)

	stats := &mockStats{snapshotFunc: func(context.Context) (*entities.LifecycleStats, error) {
		return nil, errors.New("connection refused")
	}}
	NewLifecycleMonitor(stats, common.NoopPublisher{}, m).check(context.Background())

	if got := testutil.ToFloat64(m.PendingRequests); got != 9 {
		t.Errorf("Expected gauge untouched on failure, got %v", got)
	}
}

func TestInitWorkers_StopsCleanly(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	stats := &mockStats{snapshotFunc: func(context.Context) (*entities.LifecycleStats, error) {
		return sampleStats(), nil
	}}

	c := InitWorkers(context.Background(), stats, common.NoopPublisher{}, m, 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for stats.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Stop()

	if stats.calls.Load() < 2 {
		t.Errorf("Expected the monitor to tick at least twice, got %d", stats.calls.Load())
	}
}
