package models

import "github.com/dustin/go-humanize"

// NetUsage is an accumulated amount of data received and/or transmitted over
// an arbitrary span of time, in bytes.
type NetUsage uint64

// NetUsageFromBytes wraps a raw byte count.
func NetUsageFromBytes(bytes uint64) NetUsage {
	return NetUsage(bytes)
}

// Bytes returns the raw byte count.
func (u NetUsage) Bytes() uint64 {
	return uint64(u)
}

func (u NetUsage) Add(other NetUsage) NetUsage {
	return u + other
}

// Sub returns the difference, saturating at zero so a reset counter never
// produces a huge unsigned value.
func (u NetUsage) Sub(other NetUsage) NetUsage {
	if other > u {
		return 0
	}
	return u - other
}

// String formats the usage with SI units, e.g. "1.2 MB".
func (u NetUsage) String() string {
	return humanize.Bytes(u.Bytes())
}

// SumNetUsage combines usages from several interfaces.
func SumNetUsage(usages ...NetUsage) NetUsage {
	var total NetUsage
	for _, usage := range usages {
		total = total.Add(usage)
	}
	return total
}
