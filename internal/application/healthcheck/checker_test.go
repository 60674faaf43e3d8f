package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMetrics struct {
	mu     sync.Mutex
	probes map[string]bool
	checks []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{probes: make(map[string]bool)}
}

func (f *fakeMetrics) RecordProbe(target string, healthy bool, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes[target] = healthy
}

func (f *fakeMetrics) RecordCheck(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, status)
}

func (f *fakeMetrics) checkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.checks)
}

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckAllHealthy(t *testing.T) {
	a := statusServer(t, http.StatusOK)
	b := statusServer(t, http.StatusOK)
	metrics := newFakeMetrics()

	checker := NewChecker([]Target{
		{Name: "python", URL: a.URL + "/healthz"},
		{Name: "golang", URL: b.URL + "/healthz"},
	}, time.Second, metrics, zap.NewNop())

	report := checker.Check(context.Background())

	assert.True(t, report.Healthy())
	assert.Equal(t, []ServiceStatus{
		{Service: "python", Status: StatusHealthy},
		{Service: "golang", Status: StatusHealthy},
	}, report.Services)
	assert.Equal(t, map[string]bool{"python": true, "golang": true}, metrics.probes)
	assert.Equal(t, []string{StatusHealthy}, metrics.checks)
}

func TestCheckReportsEachFailureMode(t *testing.T) {
	ok := statusServer(t, http.StatusOK)
	failing := statusServer(t, http.StatusInternalServerError)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	metrics := newFakeMetrics()
	checker := NewChecker([]Target{
		{Name: "ok", URL: ok.URL},
		{Name: "failing", URL: failing.URL},
		{Name: "down", URL: closedURL},
		{Name: "slow", URL: slow.URL},
		{Name: "invalid", URL: "http://[::1"},
	}, 100*time.Millisecond, metrics, zap.NewNop())

	report := checker.Check(context.Background())

	assert.False(t, report.Healthy())
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, []ServiceStatus{
		{Service: "ok", Status: StatusHealthy},
		{Service: "failing", Status: StatusUnhealthy},
		{Service: "down", Status: StatusUnhealthy},
		{Service: "slow", Status: StatusUnhealthy},
		{Service: "invalid", Status: StatusUnhealthy},
	}, report.Services)
	assert.Equal(t, []string{StatusUnhealthy}, metrics.checks)
}

func TestCheckProbesConcurrently(t *testing.T) {
	delay := 200 * time.Millisecond
	var targets []Target
	for i := 0; i < 5; i++ {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(delay)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)
		targets = append(targets, Target{Name: srv.URL, URL: srv.URL})
	}

	checker := NewChecker(targets, 2*time.Second, newFakeMetrics(), zap.NewNop())

	start := time.Now()
	report := checker.Check(context.Background())
	elapsed := time.Since(start)

	assert.True(t, report.Healthy())
	assert.Less(t, elapsed, 4*delay)
}

func TestMonitorKeepsLatestReport(t *testing.T) {
	srv := statusServer(t, http.StatusOK)
	metrics := newFakeMetrics()
	checker := NewChecker([]Target{{Name: "golang", URL: srv.URL}}, time.Second, metrics, zap.NewNop())

	monitor := NewMonitor(checker, 20*time.Millisecond, zap.NewNop())
	assert.Nil(t, monitor.lastReport())

	monitor.Start()
	monitor.Start()

	require.Eventually(t, func() bool {
		return metrics.checkCount() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	monitor.Stop()
	monitor.Stop()

	report := monitor.lastReport()
	require.NotNil(t, report)
	assert.True(t, report.Healthy())
}
