package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/debug-service/internal/application/healthcheck"
	"github.com/aescanero/debug-service/internal/config"
	"github.com/aescanero/debug-service/internal/logger"
	"github.com/aescanero/debug-service/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/debug-service/pkg/api/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadHealthCheck()
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

	targets := cfg.ParsedTargets()

	registry := prom.NewRegistry()
	metricsCollector := prometheus.NewCollector(registry)

	checker := healthcheck.NewChecker(targets, cfg.ProbeTimeout, metricsCollector, log)
	monitor := healthcheck.NewMonitor(checker, cfg.Interval, log)

	httpServer := http.NewServer(&http.Config{
		Port:     cfg.HTTPPort,
		Metrics:  metricsCollector,
		Gatherer: registry,
		Logger:   log,
	})
	httpServer.RegisterHealthCheckRoutes(checker)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	monitor.Start()

	log.Info("health check service started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("targets", len(targets)),
		zap.Duration("interval", cfg.Interval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("received shutdown signal")

	monitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("health check service shut down complete")
}
