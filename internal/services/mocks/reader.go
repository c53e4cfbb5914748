// Package mocks provides scripted stand-ins for the OS metrics facility.
package mocks

import (
	"context"
	"sync"
	"time"

	"sulphur/internal/models"
)

// Reader replays scripted CPU and network readings. Each call consumes the
// head of its script; the last entry repeats once the script runs out.
type Reader struct {
	mu       sync.Mutex
	CPU      []models.CPUUsage
	Counters []map[string]models.NetUsage
	CPUErr   error
	NetErr   error
}

func (r *Reader) CPUUsage(context.Context) (models.CPUUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CPUErr != nil {
		return 0, r.CPUErr
	}
	if len(r.CPU) == 0 {
		return 0, nil
	}
	v := r.CPU[0]
	if len(r.CPU) > 1 {
		r.CPU = r.CPU[1:]
	}
	return v, nil
}

func (r *Reader) NetCounters(context.Context) (map[string]models.NetUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.NetErr != nil {
		return nil, r.NetErr
	}
	if len(r.Counters) == 0 {
		return map[string]models.NetUsage{}, nil
	}
	v := r.Counters[0]
	if len(r.Counters) > 1 {
		r.Counters = r.Counters[1:]
	}
	return v, nil
}

// SetErrors makes subsequent queries fail.
func (r *Reader) SetErrors(cpuErr, netErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CPUErr = cpuErr
	r.NetErr = netErr
}

// Clock advances by Step on every call to Now.
type Clock struct {
	mu   sync.Mutex
	T    time.Time
	Step time.Duration
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}
