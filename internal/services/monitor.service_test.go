package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sulphur/internal/models"
	"sulphur/internal/services/mocks"
)

func newTestMonitor(t *testing.T, capacity int, reader SystemReader, opts ...MonitorOption) *ResourceMonitor {
	t.Helper()
	m, err := NewResourceMonitor(context.Background(), capacity, reader, opts...)
	require.NoError(t, err)
	return m
}

func TestNewResourceMonitorSeedsHistory(t *testing.T) {
	reader := &mocks.Reader{CPU: []models.CPUUsage{37}}
	m := newTestMonitor(t, 4, reader)

	snapshot := m.Snapshot()
	assert.Equal(t, []models.CPUUsage{37, 0, 0, 0}, snapshot.CPUUsage)
	assert.Equal(t, []models.NetUsageRate{
		models.IdleNetUsageRate,
		models.IdleNetUsageRate,
		models.IdleNetUsageRate,
		models.IdleNetUsageRate,
	}, snapshot.NetUsageRate)
	assert.Equal(t, 4, m.Capacity())
}

func TestNewResourceMonitorErrors(t *testing.T) {
	_, err := NewResourceMonitor(context.Background(), 0, &mocks.Reader{})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	errBoom := errors.New("boom")
	_, err = NewResourceMonitor(context.Background(), 2, &mocks.Reader{CPUErr: errBoom})
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "cannot read system metrics")

	_, err = NewResourceMonitor(context.Background(), 2, &mocks.Reader{NetErr: errBoom})
	assert.ErrorIs(t, err, errBoom)
}

func TestSnapshotLengthAlwaysCapacity(t *testing.T) {
	for _, capacity := range []int{2, 4, 10} {
		m := newTestMonitor(t, capacity, &mocks.Reader{CPU: []models.CPUUsage{50}})
		for i := 0; i < capacity*3; i++ {
			snapshot := m.Snapshot()
			require.Len(t, snapshot.CPUUsage, capacity)
			require.Len(t, snapshot.NetUsageRate, capacity)
			require.NoError(t, m.Refresh(context.Background()))
		}
	}
}

func TestSnapshotNewestFirst(t *testing.T) {
	reader := &mocks.Reader{CPU: []models.CPUUsage{5, 20, 60, 95}}
	m := newTestMonitor(t, 4, reader)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.Refresh(context.Background()))
	}

	assert.Equal(t, []models.CPUUsage{95, 60, 20, 5}, m.Snapshot().CPUUsage)
}

func TestSnapshotPaddingStopsOnceFull(t *testing.T) {
	reader := &mocks.Reader{CPU: []models.CPUUsage{11, 22, 33, 44, 55, 66}}
	m := newTestMonitor(t, 4, reader)

	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, []models.CPUUsage{22, 11, 0, 0}, m.Snapshot().CPUUsage)

	require.NoError(t, m.Refresh(context.Background()))
	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, []models.CPUUsage{44, 33, 22, 11}, m.Snapshot().CPUUsage)

	for i := 0; i < 2; i++ {
		require.NoError(t, m.Refresh(context.Background()))
		assert.NotContains(t, m.Snapshot().CPUUsage, models.IdleCPUUsage)
	}
	assert.Equal(t, []models.CPUUsage{66, 55, 44, 33}, m.Snapshot().CPUUsage)
}

func TestSnapshotIdempotent(t *testing.T) {
	m := newTestMonitor(t, 4, &mocks.Reader{CPU: []models.CPUUsage{1, 2, 3}})
	require.NoError(t, m.Refresh(context.Background()))

	assert.Equal(t, m.Snapshot(), m.Snapshot())
}

func TestRefreshComputesNetworkRate(t *testing.T) {
	reader := &mocks.Reader{
		Counters: []map[string]models.NetUsage{
			{"eth0": 1000, "wlan0": 5000, "lo": 100},
			{"eth0": 1128, "wlan0": 5128, "lo": 356, "tun0": 9999},
			{"eth0": 1640, "wlan0": 10, "lo": 356, "tun0": 10099},
		},
	}
	clock := &mocks.Clock{T: time.Unix(1_700_000_000, 0), Step: 10 * time.Second}
	m := newTestMonitor(t, 4, reader, WithClock(clock.Now))

	require.NoError(t, m.Refresh(context.Background()))
	rate := m.Snapshot().NetUsageRate[0]
	assert.Equal(t, uint64(512), rate.Usage().Bytes())
	assert.Equal(t, 10*time.Second, rate.TimePeriod())
	assert.InDelta(t, 51.2, rate.BytesPerSecond(), 1e-5)

	require.NoError(t, m.Refresh(context.Background()))
	rate = m.Snapshot().NetUsageRate[0]
	// eth0 +512, wlan0 reset (0), lo +0, tun0 +100
	assert.Equal(t, uint64(612), rate.Usage().Bytes())
}

func TestRefreshFailureSkipsCycle(t *testing.T) {
	reader := &mocks.Reader{CPU: []models.CPUUsage{10, 20, 30}}
	m := newTestMonitor(t, 4, reader)
	before := m.Snapshot()

	errBoom := errors.New("boom")
	reader.SetErrors(nil, errBoom)
	assert.ErrorIs(t, m.Refresh(context.Background()), errBoom)
	assert.Equal(t, before, m.Snapshot())

	reader.SetErrors(errBoom, nil)
	assert.ErrorIs(t, m.Refresh(context.Background()), errBoom)
	assert.Equal(t, before, m.Snapshot())
}

func TestLatest(t *testing.T) {
	m := newTestMonitor(t, 2, &mocks.Reader{CPU: []models.CPUUsage{12, 88}})
	require.NoError(t, m.Refresh(context.Background()))

	cpuUsage, netUsageRate := m.Latest()
	assert.Equal(t, models.CPUUsage(88), cpuUsage)
	assert.Zero(t, netUsageRate.BytesPerSecond())
}

// gatedReader blocks CPU queries until release is closed, once armed.
type gatedReader struct {
	*mocks.Reader
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (r *gatedReader) CPUUsage(ctx context.Context) (models.CPUUsage, error) {
	if r.armed.Load() {
		close(r.entered)
		<-r.release
	}
	return r.Reader.CPUUsage(ctx)
}

func TestSnapshotDoesNotWaitOnSystemQueries(t *testing.T) {
	reader := &gatedReader{
		Reader:  &mocks.Reader{CPU: []models.CPUUsage{10, 90}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestMonitor(t, 2, reader)
	reader.armed.Store(true)

	done := make(chan error, 1)
	go func() { done <- m.Refresh(context.Background()) }()
	<-reader.entered

	snapshot := make(chan models.Metrics, 1)
	go func() { snapshot <- m.Snapshot() }()

	select {
	case got := <-snapshot:
		assert.Equal(t, []models.CPUUsage{10, 0}, got.CPUUsage)
	case <-time.After(time.Second):
		t.Fatal("Snapshot blocked behind an in-flight system query")
	}

	close(reader.release)
	require.NoError(t, <-done)
	assert.Equal(t, []models.CPUUsage{90, 10}, m.Snapshot().CPUUsage)
}
