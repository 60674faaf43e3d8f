package http

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/aescanero/debug-service/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/debug-service/pkg/api/websocket"
	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// trackedHandler reports when HandleEcho returns
type trackedHandler struct {
	*websocket.Handler
	done chan struct{}
}

func (h *trackedHandler) HandleEcho(c *gin.Context) {
	h.Handler.HandleEcho(c)
	close(h.done)
}

func TestShutdownClosesWebSocketConnections(t *testing.T) {
	registry := prom.NewRegistry()
	metrics := prometheus.NewCollector(registry)
	s := NewServer(&Config{
		Metrics:  metrics,
		Gatherer: registry,
		Logger:   zap.NewNop(),
	})
	handler := &trackedHandler{
		Handler: websocket.NewHandler(metrics, zap.NewNop()),
		done:    make(chan struct{}),
	}
	s.SetupWebSocket(handler)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.server.Serve(listener) }()

	url := "ws://" + listener.Addr().String() + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"a":1}`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"service":"golang","echo":{"a":1}}`, string(data))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("WebSocket handler still running after Shutdown")
	}

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "timeout"), err.Error())
}
