package services

import (
	"context"
	"errors"
	"fmt"

	"sulphur/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/net"
)

var errNoCPUSample = errors.New("cpu usage query returned no samples")

// SystemReader is the OS metrics-query facility the monitor samples from.
type SystemReader interface {
	// CPUUsage returns host-wide CPU usage since the previous call.
	CPUUsage(ctx context.Context) (models.CPUUsage, error)
	// NetCounters returns the cumulative received+transmitted bytes of every
	// network interface, keyed by interface name.
	NetCounters(ctx context.Context) (map[string]models.NetUsage, error)
}

// HostReader reads the local host's counters through gopsutil.
type HostReader struct{}

func NewHostReader() *HostReader {
	return &HostReader{}
}

// CPUUsage returns the usage percentage since the previous call (interval 0).
func (HostReader) CPUUsage(ctx context.Context) (models.CPUUsage, error) {
	percentage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU usage: %w", err)
	}
	if len(percentage) == 0 {
		return 0, errNoCPUSample
	}

	return models.CPUUsageFromPercent(percentage[0]), nil
}

func (HostReader) NetCounters(ctx context.Context) (map[string]models.NetUsage, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network usage: %w", err)
	}

	usage := make(map[string]models.NetUsage, len(counters))
	for _, counter := range counters {
		usage[counter.Name] = models.NetUsageFromBytes(counter.BytesRecv).
			Add(models.NetUsageFromBytes(counter.BytesSent))
	}

	return usage, nil
}
