package workers

import (
	"context"
	"sync"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/metrics"
)

type WorkersContainer struct {
	Monitor *LifecycleMonitor

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// InitWorkers starts the background workers. Stop must be called on shutdown.
func InitWorkers(
	ctx context.Context,
	stats StatsSource,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
	monitorInterval time.Duration,
) *WorkersContainer {
	ctx, cancel := context.WithCancel(ctx)

	c := &WorkersContainer{
		Monitor: NewLifecycleMonitor(stats, events, m),
		cancel:  cancel,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.Monitor.Start(ctx, monitorInterval)
	}()

	return c
}

// Stop cancels every worker and waits for them to return
func (c *WorkersContainer) Stop() {
	c.cancel()
	c.wg.Wait()
}
