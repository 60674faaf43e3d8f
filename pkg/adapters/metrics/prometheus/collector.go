package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records service metrics using Prometheus
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	echoPayloadSize *prometheus.HistogramVec
	malformed       *prometheus.CounterVec

	wsConnections prometheus.Gauge
	wsMessages    *prometheus.CounterVec

	targetUp      *prometheus.GaugeVec
	probeDuration *prometheus.HistogramVec
	checks        *prometheus.CounterVec
}

// NewCollector creates a collector whose metrics are registered with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debug_service_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "debug_service_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		echoPayloadSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "debug_service_echo_payload_bytes",
				Help:    "Size of echoed JSON payloads in bytes",
				Buckets: prometheus.ExponentialBuckets(16, 4, 8),
			},
			[]string{"transport"},
		),
		malformed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debug_service_malformed_requests_total",
				Help: "Total number of echo payloads rejected as malformed JSON",
			},
			[]string{"transport"},
		),
		wsConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "debug_service_websocket_connections",
				Help: "Number of open websocket connections",
			},
		),
		wsMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debug_service_websocket_messages_total",
				Help: "Total number of websocket frames handled",
			},
			[]string{"result"},
		),
		targetUp: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "health_check_target_up",
				Help: "Whether the last probe of a target succeeded (1) or not (0)",
			},
			[]string{"target"},
		),
		probeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "health_check_probe_duration_seconds",
				Help:    "Upstream health probe duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"target"},
		),
		checks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_check_checks_total",
				Help: "Total number of aggregate health checks by outcome",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest records a completed HTTP request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveEchoPayload records the size of an echoed payload
func (c *Collector) ObserveEchoPayload(transport string, size int) {
	c.echoPayloadSize.WithLabelValues(transport).Observe(float64(size))
}

// IncMalformed counts a rejected echo payload
func (c *Collector) IncMalformed(transport string) {
	c.malformed.WithLabelValues(transport).Inc()
}

// WebSocketOpened tracks a new websocket connection
func (c *Collector) WebSocketOpened() {
	c.wsConnections.Inc()
}

// WebSocketClosed tracks a closed websocket connection
func (c *Collector) WebSocketClosed() {
	c.wsConnections.Dec()
}

// IncWebSocketMessages counts a handled websocket frame
func (c *Collector) IncWebSocketMessages(result string) {
	c.wsMessages.WithLabelValues(result).Inc()
}

// RecordProbe records the outcome of a single upstream probe
func (c *Collector) RecordProbe(target string, healthy bool, duration time.Duration) {
	up := 0.0
	if healthy {
		up = 1
	}
	c.targetUp.WithLabelValues(target).Set(up)
	c.probeDuration.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordCheck counts an aggregate health check
func (c *Collector) RecordCheck(status string) {
	c.checks.WithLabelValues(status).Inc()
}
