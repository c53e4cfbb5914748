package services

import (
	"context"
	"log/slog"
	"time"
)

// Refresher is what the sampler drives on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
	LatestSource
}

// RunSampler refreshes the monitor every interval until ctx is cancelled.
// A failed refresh is logged and the cycle skipped.
func RunSampler(ctx context.Context, monitor Refresher, interval time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Sampler started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Sampler stopped")
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := monitor.Refresh(ctx); err != nil {
				logger.Warn("Skipping refresh", slog.Any("error", err))
				continue
			}
			if logger.Enabled(ctx, slog.LevelDebug) {
				cpuUsage, netUsageRate := monitor.Latest()
				logger.Debug("Refreshed",
					slog.String("cpu_usage", cpuUsage.String()),
					slog.String("net_usage_rate", netUsageRate.String()),
				)
			}
		}
	}
}
