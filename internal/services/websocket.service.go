package services

import (
	"context"
	"time"

	"sulphur/internal/models"
)

// MessageMetrics is the type of an envelope carrying a snapshot.
const MessageMetrics = "metrics"

// WebSocketMessage is the envelope pushed to streaming clients.
type WebSocketMessage struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Metrics   *models.Metrics `json:"metrics,omitempty"`
}

// SnapshotSource is anything that can produce the current history snapshot.
type SnapshotSource interface {
	Snapshot() models.Metrics
}

// NewMetricsMessage wraps a snapshot for streaming.
func NewMetricsMessage(metrics models.Metrics) WebSocketMessage {
	return WebSocketMessage{
		Type:      MessageMetrics,
		Timestamp: time.Now(),
		Metrics:   &metrics,
	}
}

// StreamSnapshots sends one snapshot immediately and then one per interval
// until ctx is cancelled or send fails.
func StreamSnapshots(ctx context.Context, source SnapshotSource, interval time.Duration, send func(WebSocketMessage) error) error {
	if err := send(NewMetricsMessage(source.Snapshot())); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := send(NewMetricsMessage(source.Snapshot())); err != nil {
				return err
			}
		}
	}
}
