package models

import "fmt"

// CPUUsage is an instant, host-wide CPU usage measurement in percent (0-100).
type CPUUsage float64

// CPUUsageFromPercent wraps a percentage reported by the OS.
func CPUUsageFromPercent(percent float64) CPUUsage {
	return CPUUsage(percent)
}

// Percent returns the usage as a percentage.
func (u CPUUsage) Percent() float64 {
	return float64(u)
}

// Ratio returns the usage as a fraction of one.
func (u CPUUsage) Ratio() float64 {
	return float64(u) / 100
}

func (u CPUUsage) Add(other CPUUsage) CPUUsage {
	return u + other
}

func (u CPUUsage) Sub(other CPUUsage) CPUUsage {
	return u - other
}

// String formats the usage for display, e.g. "42.5%".
func (u CPUUsage) String() string {
	return fmt.Sprintf("%.1f%%", u.Percent())
}
