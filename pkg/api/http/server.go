package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aescanero/debug-service/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	metrics *prometheus.Collector
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port     int
	Metrics  *prometheus.Collector
	Gatherer prom.Gatherer
	Logger   *zap.Logger
}

// NewServer creates a new HTTP server with the shared middleware and
// fallback routes. Feature routes are added with the Register methods.
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(requestMetrics(cfg.Metrics))
	router.Use(corsMiddleware())

	s := &Server{
		router:  router,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	router.NoRoute(s.handleNotFound)
	router.NoMethod(s.handleMethodNotAllowed)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// WebSocketHandler serves upgraded connections and closes them on shutdown
type WebSocketHandler interface {
	HandleEcho(*gin.Context)
	Shutdown()
}

// SetupWebSocket adds the WebSocket echo handler to the server. Its
// connections are closed when Shutdown is called.
func (s *Server) SetupWebSocket(handler WebSocketHandler) {
	s.router.GET("/ws", handler.HandleEcho)
	s.server.RegisterOnShutdown(handler.Shutdown)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
