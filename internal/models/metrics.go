package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMeasurementType is returned for a metric kind this build does not track.
var ErrUnknownMeasurementType = errors.New("unknown measurement type")

// MeasurementType selects one of the tracked metrics.
type MeasurementType string

const (
	MeasurementCPU MeasurementType = "cpu"
	MeasurementNet MeasurementType = "net"
)

// MeasurementTypes lists every tracked metric in display order.
var MeasurementTypes = []MeasurementType{MeasurementCPU, MeasurementNet}

// ParseMeasurementType accepts the names used on the command line and in
// query strings.
func ParseMeasurementType(s string) (MeasurementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return MeasurementCPU, nil
	case "net", "network":
		return MeasurementNet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMeasurementType, s)
	}
}

func (t MeasurementType) String() string {
	return string(t)
}

// Default padding for slots the history has not filled yet.
var (
	IdleCPUUsage     = CPUUsageFromPercent(0)
	IdleNetUsageRate = NetUsageRateFromUsage(NetUsageFromBytes(0), 0)
)

// Metrics is an immutable snapshot of the rolling sample history. Every
// sequence holds exactly the monitor's capacity of samples, newest first.
type Metrics struct {
	CPUUsage     []CPUUsage     `json:"cpu_usage"`
	NetUsageRate []NetUsageRate `json:"net_usage_rate"`
}

// Len returns the number of samples per metric.
func (m Metrics) Len() int {
	return len(m.CPUUsage)
}
