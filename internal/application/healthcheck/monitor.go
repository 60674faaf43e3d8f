package healthcheck

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Monitor periodically runs the checker and keeps the latest report
type Monitor struct {
	checker  *Checker
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	running bool
	last    *Report
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor creates a new health monitor
func NewMonitor(checker *Checker, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Start starts the monitor. The first check runs immediately.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.run(ctx)
}

// Stop stops the monitor and waits for an in-flight check to finish
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	cancel()
	<-done
}

// lastReport returns the most recent report, or nil before the first check
func (m *Monitor) lastReport() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// run is the main monitoring loop
func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.checkHealth(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkHealth(ctx)
		}
	}
}

// checkHealth runs one check and logs the outcome
func (m *Monitor) checkHealth(ctx context.Context) {
	report := m.checker.Check(ctx)
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	m.last = report
	m.mu.Unlock()

	var down []string
	for _, s := range report.Services {
		if s.Status != StatusHealthy {
			down = append(down, s.Service)
		}
	}

	if report.Healthy() {
		m.logger.Info("all services healthy",
			zap.Int("total", len(report.Services)))
		return
	}

	m.logger.Warn("services unhealthy",
		zap.Int("total", len(report.Services)),
		zap.Strings("unhealthy", down))
}
