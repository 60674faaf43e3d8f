package config

import (
	"testing"
	"time"

	"github.com/aescanero/debug-service/internal/application/healthcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, ":9090", cfg.GetGRPCAddr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8082")
	t.Setenv("GRPC_PORT", "9192")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8082", cfg.GetHTTPAddr())
	assert.Equal(t, ":9192", cfg.GetGRPCAddr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port zero", "HTTP_PORT", "0"},
		{"port too large", "HTTP_PORT", "70000"},
		{"not a number", "HTTP_PORT", "http"},
		{"same port as gRPC", "HTTP_PORT", "9090"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"zero shutdown timeout", "SHUTDOWN_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadHealthCheckDefaults(t *testing.T) {
	cfg, err := LoadHealthCheck()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.GetHTTPAddr())
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 30*time.Second, cfg.Interval)

	targets := cfg.ParsedTargets()
	require.Len(t, targets, 5)

	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = target.Name
	}
	assert.Equal(t, []string{"python", "golang", "nodejs", "ballerina", "java"}, names)
	assert.Equal(t, "http://localhost:8082/healthz", targets[1].URL)
}

func TestParseTargets(t *testing.T) {
	cfg := &HealthCheckConfig{Targets: []string{" a = http://a:1/healthz", "b=https://b/healthz"}}

	targets, err := cfg.ParseTargets()
	require.NoError(t, err)
	assert.Equal(t, []healthcheck.Target{
		{Name: "a", URL: "http://a:1/healthz"},
		{Name: "b", URL: "https://b/healthz"},
	}, targets)
}

func TestLoadHealthCheckTargetsFromEnvironment(t *testing.T) {
	t.Setenv("HEALTHCHECK_TARGETS", "golang=http://golang:8082/healthz,java=http://java:8085/healthz")

	cfg, err := LoadHealthCheck()
	require.NoError(t, err)
	assert.Equal(t, []healthcheck.Target{
		{Name: "golang", URL: "http://golang:8082/healthz"},
		{Name: "java", URL: "http://java:8085/healthz"},
	}, cfg.ParsedTargets())
}

func TestLoadHealthCheckRejectsInvalidTargets(t *testing.T) {
	t.Setenv("HEALTHCHECK_TARGETS", "golang")

	_, err := LoadHealthCheck()
	assert.Error(t, err)
}

func TestParseTargetsErrors(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
	}{
		{"empty", nil},
		{"missing separator", []string{"python"}},
		{"missing name", []string{"=http://localhost"}},
		{"bad scheme", []string{"python=ftp://localhost"}},
		{"no host", []string{"python=http://"}},
		{"duplicate", []string{"a=http://x", "a=http://y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &HealthCheckConfig{Targets: tt.targets}
			_, err := cfg.ParseTargets()
			assert.Error(t, err)
		})
	}
}
