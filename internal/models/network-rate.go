package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// NetUsageRate is a network utilization measurement: the data moved within a
// known time period. The rate itself is derived on demand so the originating
// interval is never lost.
type NetUsageRate struct {
	usage      NetUsage
	timePeriod time.Duration
}

// netUsageRateJSON is the wire form of NetUsageRate. The period is encoded in
// nanoseconds so a decoded value is bit-identical to the encoded one.
type netUsageRateJSON struct {
	Usage      uint64        `json:"usage"`
	TimePeriod time.Duration `json:"time_period"`
}

// NetUsageRateFromUsage pairs a usage with the period it was accumulated over.
func NetUsageRateFromUsage(usage NetUsage, timePeriod time.Duration) NetUsageRate {
	return NetUsageRate{usage: usage, timePeriod: timePeriod}
}

func (r NetUsageRate) Usage() NetUsage {
	return r.usage
}

func (r NetUsageRate) TimePeriod() time.Duration {
	return r.timePeriod
}

// BytesPerSecond returns the rate in bytes per second. A zero or negative
// period yields zero.
func (r NetUsageRate) BytesPerSecond() float64 {
	seconds := r.timePeriod.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(r.usage.Bytes()) / seconds
}

func (r NetUsageRate) BitsPerSecond() float64 {
	return r.BytesPerSecond() * 8
}

// MegabitsPerSecond returns the rate in SI megabits per second.
func (r NetUsageRate) MegabitsPerSecond() float64 {
	return r.BitsPerSecond() / 1_000_000
}

// String formats the rate for display, e.g. "1.2 MB/s (9.6 Mbit/s)".
func (r NetUsageRate) String() string {
	return fmt.Sprintf("%s/s (%.1f Mbit/s)", humanize.Bytes(uint64(r.BytesPerSecond())), r.MegabitsPerSecond())
}

func (r NetUsageRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(netUsageRateJSON{
		Usage:      r.usage.Bytes(),
		TimePeriod: r.timePeriod,
	})
}

func (r *NetUsageRate) UnmarshalJSON(data []byte) error {
	var raw netUsageRateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.usage = NetUsageFromBytes(raw.Usage)
	r.timePeriod = raw.TimePeriod
	return nil
}
