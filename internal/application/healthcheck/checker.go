package healthcheck

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// MetricsRecorder receives probe and check outcomes
type MetricsRecorder interface {
	RecordProbe(target string, healthy bool, duration time.Duration)
	RecordCheck(status string)
}

// Target is a named upstream health endpoint
type Target struct {
	Name string
	URL  string
}

// ServiceStatus is the probe outcome for one target
type ServiceStatus struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// Report is the aggregate outcome of one check
type Report struct {
	Status    string          `json:"status"`
	Services  []ServiceStatus `json:"services"`
	CheckedAt time.Time       `json:"-"`
}

// Healthy reports whether every target was healthy
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Checker probes a fixed, ordered set of targets
type Checker struct {
	targets []Target
	client  *http.Client
	timeout time.Duration
	metrics MetricsRecorder
	logger  *zap.Logger
}

// NewChecker creates a checker. timeout bounds each individual probe.
func NewChecker(targets []Target, timeout time.Duration, metrics MetricsRecorder, logger *zap.Logger) *Checker {
	return &Checker{
		targets: targets,
		client:  &http.Client{},
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Check probes all targets concurrently. Results keep the configured order.
func (c *Checker) Check(ctx context.Context) *Report {
	statuses := make([]ServiceStatus, len(c.targets))

	var g errgroup.Group
	for i, target := range c.targets {
		g.Go(func() error {
			start := time.Now()
			healthy := c.probe(ctx, target)
			c.metrics.RecordProbe(target.Name, healthy, time.Since(start))

			status := StatusUnhealthy
			if healthy {
				status = StatusHealthy
			}
			statuses[i] = ServiceStatus{Service: target.Name, Status: status}
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusHealthy
	for _, s := range statuses {
		if s.Status != StatusHealthy {
			overall = StatusUnhealthy
			break
		}
	}
	c.metrics.RecordCheck(overall)

	return &Report{
		Status:    overall,
		Services:  statuses,
		CheckedAt: time.Now(),
	}
}

// probe reports whether target answered GET with 200 within the timeout
func (c *Checker) probe(ctx context.Context, target Target) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		c.logger.Warn("failed to build probe request",
			zap.String("target", target.Name),
			zap.Error(err))
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("probe failed",
			zap.String("target", target.Name),
			zap.String("url", target.URL),
			zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("probe returned non-200 status",
			zap.String("target", target.Name),
			zap.Int("status", resp.StatusCode))
		return false
	}

	return true
}
