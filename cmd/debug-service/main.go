package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/debug-service/internal/application/debug"
	"github.com/aescanero/debug-service/internal/config"
	"github.com/aescanero/debug-service/internal/logger"
	"github.com/aescanero/debug-service/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/debug-service/pkg/api/grpc"
	"github.com/aescanero/debug-service/pkg/api/http"
	"github.com/aescanero/debug-service/pkg/api/websocket"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting debug service",
		zap.String("service", debug.ServiceID),
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	registry := prom.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := prometheus.NewCollector(registry)

	readiness := debug.NewReadiness()

	httpServer := http.NewServer(&http.Config{
		Port:     cfg.HTTPPort,
		Metrics:  metricsCollector,
		Gatherer: registry,
		Logger:   log,
	})
	httpServer.RegisterDebugRoutes(readiness)
	httpServer.SetupWebSocket(websocket.NewHandler(metricsCollector, log))

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Port:   cfg.GRPCPort,
		Logger: log,
	})
	if err != nil {
		log.Fatal("failed to create gRPC server", zap.Error(err))
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			log.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	log.Info("debug service started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	log.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Stop advertising readiness before draining
	readiness.MarkShuttingDown()
	grpcServer.MarkNotServing()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		log.Error("gRPC server shutdown error", zap.Error(err))
	}

	log.Info("debug service shut down complete")
}
