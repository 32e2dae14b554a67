package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// HTTPPort is the fixed port of the public listener.
const HTTPPort = 5000

// Config holds all configuration for the service
type Config struct {
	// Build metadata reported by the health check
	App AppConfig

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Optional listeners, 0 disables them
	MetricsPort int `env:"METRICS_PORT" envDefault:"0"`
	GRPCPort    int `env:"GRPC_PORT" envDefault:"0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// AppConfig holds the build metadata injected at deploy time
type AppConfig struct {
	Version     string `env:"APP_VERSION" envDefault:"1.0"`
	Description string `env:"APP_DESCRIPTION" envDefault:"PI technical example"`
	CommitSHA   string `env:"APP_COMMIT_SHA" envDefault:"abc12345679"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from the given environment map instead of
// the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return load(env.Options{Environment: environment})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateOptionalPort("metrics", c.MetricsPort); err != nil {
		return err
	}
	if err := validateOptionalPort("gRPC", c.GRPCPort); err != nil {
		return err
	}
	if c.MetricsPort != 0 && c.MetricsPort == c.GRPCPort {
		return fmt.Errorf("metrics and gRPC ports must differ: %d", c.MetricsPort)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %s", c.ShutdownTimeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

func validateOptionalPort(name string, port int) error {
	if port == 0 {
		return nil
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s port: %d", name, port)
	}
	if port == HTTPPort {
		return fmt.Errorf("%s port %d collides with the HTTP port", name, port)
	}
	return nil
}

// GetHTTPAddr returns the HTTP server address, bound on all interfaces
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", HTTPPort)
}

// GetMetricsAddr returns the metrics server address, or "" when disabled
func (c *Config) GetMetricsAddr() string {
	if c.MetricsPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// GetGRPCAddr returns the gRPC server address, or "" when disabled
func (c *Config) GetGRPCAddr() string {
	if c.GRPCPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.GRPCPort)
}
