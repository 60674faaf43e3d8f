package http

import (
	"net/http"

	"github.com/aescanero/debug-service/internal/application/debug"
	"github.com/aescanero/debug-service/internal/application/healthcheck"
	"github.com/gin-gonic/gin"
)

// healthCheckServiceID identifies the aggregator in its own health response
const healthCheckServiceID = "health-check"

// RegisterHealthCheckRoutes adds the aggregator endpoints
func (s *Server) RegisterHealthCheckRoutes(checker *healthcheck.Checker) {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, debug.HealthResponse{
			Status:  debug.StatusHealthy,
			Service: healthCheckServiceID,
		})
	})
	s.router.GET("/health", func(c *gin.Context) {
		s.handleAggregateHealth(c, checker)
	})
}

// handleAggregateHealth probes every target and answers 503 if any is down
func (s *Server) handleAggregateHealth(c *gin.Context, checker *healthcheck.Checker) {
	report := checker.Check(c.Request.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, report)
}
