package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sulphur/internal/history"
	"sulphur/internal/models"
)

// ErrInvalidCapacity is returned when a monitor is asked for a non-positive history.
var ErrInvalidCapacity = errors.New("history capacity must be positive")

// ResourceMonitor owns the system reader and the rolling history of every
// tracked metric. Refresh holds the lock only to update the histories;
// Snapshot and Latest hold it for one copy.
type ResourceMonitor struct {
	mu           sync.Mutex
	reader       SystemReader
	now          func() time.Time
	cpuUsage     *history.Buffer[models.CPUUsage]
	netUsageRate *history.Buffer[models.NetUsageRate]
	netCounters  map[string]models.NetUsage
	lastRefresh  time.Time
}

// MonitorOption customizes a ResourceMonitor.
type MonitorOption func(*ResourceMonitor)

// WithClock replaces time.Now, used to compute network rates.
func WithClock(now func() time.Time) MonitorOption {
	return func(m *ResourceMonitor) {
		m.now = now
	}
}

// NewResourceMonitor queries the system once and seeds every history with one
// sample, so a snapshot is never taken from an empty buffer. The network
// history is seeded with a zero-usage, zero-duration rate.
func NewResourceMonitor(ctx context.Context, capacity int, reader SystemReader, opts ...MonitorOption) (*ResourceMonitor, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	m := &ResourceMonitor{
		reader:       reader,
		now:          time.Now,
		cpuUsage:     history.NewBuffer[models.CPUUsage](capacity),
		netUsageRate: history.NewBuffer[models.NetUsageRate](capacity),
	}
	for _, opt := range opts {
		opt(m)
	}

	cpuUsage, err := reader.CPUUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read system metrics: %w", err)
	}
	netCounters, err := reader.NetCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read system metrics: %w", err)
	}

	m.cpuUsage.Push(cpuUsage)
	m.netUsageRate.Push(models.IdleNetUsageRate)
	m.netCounters = netCounters
	m.lastRefresh = m.now()

	return m, nil
}

// Capacity returns the number of samples retained per metric.
func (m *ResourceMonitor) Capacity() int {
	return m.cpuUsage.Cap()
}

// Refresh samples the system and appends one measurement to every history.
// If any query fails the cycle is skipped and no history changes. The OS is
// queried before the lock is taken, so snapshots never wait on it.
func (m *ResourceMonitor) Refresh(ctx context.Context) error {
	cpuUsage, err := m.reader.CPUUsage(ctx)
	if err != nil {
		return err
	}
	netCounters, err := m.reader.NetCounters(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.cpuUsage.Push(cpuUsage)
	m.netUsageRate.Push(models.NetUsageRateFromUsage(
		netUsageSince(m.netCounters, netCounters),
		now.Sub(m.lastRefresh),
	))
	m.netCounters = netCounters
	m.lastRefresh = now

	return nil
}

// netUsageSince sums the per-interface growth of the cumulative counters.
// Interfaces that are new, or whose counters went backwards, contribute nothing.
func netUsageSince(previous, current map[string]models.NetUsage) models.NetUsage {
	deltas := make([]models.NetUsage, 0, len(current))
	for name, usage := range current {
		last, ok := previous[name]
		if !ok {
			continue
		}
		deltas = append(deltas, usage.Sub(last))
	}

	return models.SumNetUsage(deltas...)
}

// Snapshot copies the histories newest first, padding unfilled slots with
// the idle default so every sequence is exactly Capacity() long.
func (m *ResourceMonitor) Snapshot() models.Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	return models.Metrics{
		CPUUsage:     m.cpuUsage.NewestFirst(models.IdleCPUUsage),
		NetUsageRate: m.netUsageRate.NewestFirst(models.IdleNetUsageRate),
	}
}

// Latest returns the newest measurement of every metric.
func (m *ResourceMonitor) Latest() (models.CPUUsage, models.NetUsageRate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cpuUsage, _ := m.cpuUsage.Newest()
	netUsageRate, _ := m.netUsageRate.Newest()
	return cpuUsage, netUsageRate
}
