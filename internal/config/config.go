package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aescanero/debug-service/internal/application/healthcheck"
	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the debug service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// HealthCheckConfig holds configuration for the health aggregator
type HealthCheckConfig struct {
	HTTPPort int    `env:"HEALTHCHECK_PORT" envDefault:"8090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Targets are "name=url" pairs, probed in the listed order
	Targets      []string      `env:"HEALTHCHECK_TARGETS" envSeparator:"," envDefault:"python=http://localhost:8081/healthz,golang=http://localhost:8082/healthz,nodejs=http://localhost:8083/healthz,ballerina=http://localhost:8084/healthz,java=http://localhost:8085/healthz"`
	ProbeTimeout time.Duration `env:"HEALTHCHECK_PROBE_TIMEOUT" envDefault:"3s"`
	Interval     time.Duration `env:"HEALTHCHECK_INTERVAL" envDefault:"30s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	targets []healthcheck.Target
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads the debug service configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validatePort("HTTP", c.HTTPPort); err != nil {
		return err
	}
	if err := validatePort("gRPC", c.GRPCPort); err != nil {
		return err
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP and gRPC ports must differ: %d", c.HTTPPort)
	}

	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// LoadHealthCheck reads the health aggregator configuration from environment variables
func LoadHealthCheck() (*HealthCheckConfig, error) {
	cfg := &HealthCheckConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *HealthCheckConfig) Validate() error {
	if err := validatePort("HTTP", c.HTTPPort); err != nil {
		return err
	}

	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("check interval must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	targets, err := c.ParseTargets()
	if err != nil {
		return err
	}
	c.targets = targets

	return nil
}

// ParsedTargets returns the targets parsed by Validate
func (c *HealthCheckConfig) ParsedTargets() []healthcheck.Target {
	return c.targets
}

// GetHTTPAddr returns the HTTP server address
func (c *HealthCheckConfig) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// ParseTargets splits the configured "name=url" pairs, keeping their order
func (c *HealthCheckConfig) ParseTargets() ([]healthcheck.Target, error) {
	if len(c.Targets) == 0 {
		return nil, fmt.Errorf("at least one health check target is required")
	}

	targets := make([]healthcheck.Target, 0, len(c.Targets))
	seen := make(map[string]bool, len(c.Targets))
	for _, raw := range c.Targets {
		name, rawURL, ok := strings.Cut(strings.TrimSpace(raw), "=")
		name = strings.TrimSpace(name)
		rawURL = strings.TrimSpace(rawURL)
		if !ok || name == "" || rawURL == "" {
			return nil, fmt.Errorf("invalid health check target %q (want name=url)", raw)
		}

		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid URL for health check target %s: %q", name, rawURL)
		}

		if seen[name] {
			return nil, fmt.Errorf("duplicate health check target: %s", name)
		}
		seen[name] = true

		targets = append(targets, healthcheck.Target{Name: name, URL: rawURL})
	}

	return targets, nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s port: %d", name, port)
	}
	return nil
}
