package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/aescanero/debug-service/internal/application/debug"
	"github.com/aescanero/debug-service/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	metrics *prometheus.Collector
	logger  *zap.Logger

	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	shutdown bool
}

// NewHandler creates a new WebSocket handler
func NewHandler(metrics *prometheus.Collector, logger *zap.Logger) *Handler {
	return &Handler{
		metrics: metrics,
		logger:  logger,
		conns:   make(map[*websocket.Conn]struct{}),
	}
}

// HandleEcho answers every text frame with the echo envelope of its JSON
// content. Malformed or binary frames get an error frame and the connection
// stays open.
func (h *Handler) HandleEcho(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	if !h.track(conn) {
		h.closeGoingAway(conn)
		return
	}
	defer h.untrack(conn)

	h.metrics.WebSocketOpened()
	defer h.metrics.WebSocketClosed()

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	conn.SetReadLimit(debug.MaxBodyBytes)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}

		reply := h.reply(messageType, data)

		payload, err := json.Marshal(reply)
		if err != nil {
			h.logger.Error("failed to marshal reply", zap.Error(err))
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Error("failed to write message", zap.Error(err))
			return
		}
	}
}

// Shutdown sends a going-away close frame to every open connection and
// closes it. Connections upgraded afterwards are closed immediately.
// Hijacked connections are not tracked by http.Server, so this must be
// registered with RegisterOnShutdown.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	h.shutdown = true
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	if len(conns) > 0 {
		h.logger.Info("closing WebSocket connections", zap.Int("count", len(conns)))
	}

	for _, conn := range conns {
		h.closeGoingAway(conn)
	}
}

func (h *Handler) track(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.shutdown {
		return false
	}
	h.conns[conn] = struct{}{}
	return true
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// closeGoingAway is safe to call concurrently with the connection's reader
func (h *Handler) closeGoingAway(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}

// reply builds the response envelope for one inbound frame
func (h *Handler) reply(messageType int, data []byte) interface{} {
	if messageType != websocket.TextMessage {
		h.metrics.IncWebSocketMessages("rejected")
		return debug.NewErrorResponse(
			debug.CodeUnsupportedFrame,
			"only text frames carrying JSON are supported",
			nil,
		)
	}

	resp, err := debug.Echo(data)
	if err != nil {
		h.metrics.IncMalformed("websocket")
		h.metrics.IncWebSocketMessages("malformed")
		return debug.NewErrorResponse(
			debug.CodeMalformedRequest,
			"frame must contain a single valid JSON value",
			err.Error(),
		)
	}

	h.metrics.ObserveEchoPayload("websocket", len(resp.Echo))
	h.metrics.IncWebSocketMessages("echoed")
	return resp
}
