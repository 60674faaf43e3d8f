package http

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/aescanero/debug-service/internal/application/debug"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterDebugRoutes adds the debug service endpoints
func (s *Server) RegisterDebugRoutes(readiness *debug.Readiness) {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/echo", s.handleEcho)
	s.router.GET("/readiness", func(c *gin.Context) {
		s.handleReadiness(c, readiness)
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, debug.Health())
}

// handleEcho wraps the request body in the echo envelope
func (s *Server) handleEcho(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, debug.MaxBodyBytes)

	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, debug.NewErrorResponse(
				debug.CodePayloadTooLarge,
				"request body exceeds the echo size limit",
				tooLarge.Limit,
			))
			return
		}

		s.logger.Warn("failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, debug.NewErrorResponse(
			debug.CodeMalformedRequest,
			"failed to read request body",
			nil,
		))
		return
	}

	resp, err := debug.Echo(body)
	if err != nil {
		s.metrics.IncMalformed("http")
		s.logger.Debug("rejected malformed echo body", zap.Error(err))
		c.JSON(http.StatusBadRequest, debug.NewErrorResponse(
			debug.CodeMalformedRequest,
			"request body must be a single valid JSON value",
			err.Error(),
		))
		return
	}

	s.metrics.ObserveEchoPayload("http", len(resp.Echo))
	c.JSON(http.StatusOK, resp)
}

// handleReadiness reports 503 once shutdown has begun
func (s *Server) handleReadiness(c *gin.Context, readiness *debug.Readiness) {
	if !readiness.Ready() {
		c.JSON(http.StatusServiceUnavailable, debug.NewErrorResponse(
			debug.CodeShuttingDown,
			"server is shutting down",
			nil,
		))
		return
	}

	c.JSON(http.StatusOK, readiness.Response())
}

// handleNotFound handles requests for unknown paths
func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, debug.NewErrorResponse(
		debug.CodeNotFound,
		"no route for "+c.Request.URL.Path,
		nil,
	))
}

// handleMethodNotAllowed handles known paths requested with the wrong method
func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	allowed := s.allowedMethods(c.Request.URL.Path)
	if len(allowed) > 0 {
		c.Header("Allow", strings.Join(allowed, ", "))
	}

	c.JSON(http.StatusMethodNotAllowed, debug.NewErrorResponse(
		debug.CodeMethodNotAllowed,
		"method "+c.Request.Method+" not allowed for "+c.Request.URL.Path,
		nil,
	))
}

// allowedMethods lists the methods registered for an exact path
func (s *Server) allowedMethods(path string) []string {
	var methods []string
	for _, route := range s.router.Routes() {
		if route.Path == path {
			methods = append(methods, route.Method)
		}
	}
	sort.Strings(methods)
	return methods
}
