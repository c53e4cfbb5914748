// Package client fetches metric snapshots from a running sulphur exporter.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"sulphur/internal/models"
	"sulphur/internal/services"
)

// ErrUnexpectedStatus is returned when the exporter answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to one exporter. It holds no state besides its configuration.
type Client struct {
	httpClient *http.Client
	addr       string
}

// New returns a client for the exporter listening on addr (host:port).
func New(addr string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		addr:       addr,
	}
}

func (c *Client) endpoint(scheme, path string) string {
	u := url.URL{Scheme: scheme, Host: c.addr, Path: path}
	return u.String()
}

// Fetch performs a single GET /metrics and decodes the snapshot.
func (c *Client) Fetch(ctx context.Context) (models.Metrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("http", "/metrics"), nil)
	if err != nil {
		return models.Metrics{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Metrics{}, fmt.Errorf("failed to fetch metrics from %s: %w", c.addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Metrics{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var metrics models.Metrics
	if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
		return models.Metrics{}, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return metrics, nil
}

// Watch subscribes to the exporter's stream and calls fn with every pushed
// snapshot. It returns when ctx is cancelled (nil), the server closes the
// stream normally (nil), fn fails, or the connection breaks.
func (c *Client) Watch(ctx context.Context, fn func(models.Metrics) error) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = c.httpClient.Timeout

	ws, _, err := dialer.DialContext(ctx, c.endpoint("ws", "/ws"), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}
	defer ws.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = ws.Close()
	})
	defer stop()

	for {
		var msg services.WebSocketMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("stream from %s: %w", c.addr, err)
		}

		// Envelopes of other types are skipped.
		if msg.Type != services.MessageMetrics || msg.Metrics == nil {
			continue
		}
		if err := fn(*msg.Metrics); err != nil {
			return err
		}
	}
}
