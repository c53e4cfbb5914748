package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sulphur/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamController pushes a fresh snapshot to websocket clients every
// sampling interval.
type StreamController struct {
	// shutdown outlives individual requests: hijacked connections are not
	// closed by http.Server.Shutdown.
	shutdown context.Context
	source   services.SnapshotSource
	interval time.Duration
	logger   *slog.Logger
}

func NewStreamController(shutdown context.Context, source services.SnapshotSource, interval time.Duration, logger *slog.Logger) *StreamController {
	return &StreamController{
		shutdown: shutdown,
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// HandleWebSocket upgrades the connection and streams until the client goes
// away or the service stops.
func (sc *StreamController) HandleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sc.logger.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return
	}
	defer ws.Close()

	clientID := c.ClientIP()
	sc.logger.Info("Client connected", slog.String("client", clientID))

	ctx, cancel := context.WithCancel(sc.shutdown)
	defer cancel()

	go readPump(ws, cancel)

	err = services.StreamSnapshots(ctx, sc.source, sc.interval, func(msg services.WebSocketMessage) error {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		return ws.WriteJSON(msg)
	})
	if err != nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		sc.logger.Warn("WebSocket write failed", slog.String("client", clientID), slog.Any("error", err))
	}

	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	sc.logger.Info("Client disconnected", slog.String("client", clientID))
}

// readPump drains client frames so control messages are processed, and
// cancels the stream once the client closes.
func readPump(ws *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
