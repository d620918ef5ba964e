// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and CALC_* environment variables on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":3002".
	Addr string `koanf:"addr" validate:"required"`

	// DefaultNum1 and DefaultNum2 are used when a query parameter is absent.
	DefaultNum1 string `koanf:"default_num1"`
	DefaultNum2 string `koanf:"default_num2"`

	// ReportInvalidInput answers unparsable operands with 400 instead of 500.
	ReportInvalidInput bool `koanf:"report_invalid_input"`

	// HTTP server timeouts in milliseconds.
	ReadTimeoutMS       int `koanf:"read_timeout_ms" validate:"gt=0"`
	WriteTimeoutMS      int `koanf:"write_timeout_ms" validate:"gt=0"`
	IdleTimeoutMS       int `koanf:"idle_timeout_ms" validate:"gt=0"`
	ReadHeaderTimeoutMS int `koanf:"read_header_timeout_ms" validate:"gt=0"`
	ShutdownTimeoutMS   int `koanf:"shutdown_timeout_ms" validate:"gt=0"`

	// SystemMetricsIntervalMS controls how often runtime gauges are refreshed.
	SystemMetricsIntervalMS int `koanf:"system_metrics_interval_ms" validate:"gt=0"`

	// MetricsNamespace and MetricsSubsystem prefix every Prometheus series name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required,excludesall=-.:"`
	MetricsSubsystem string `koanf:"metrics_subsystem" validate:"omitempty,excludesall=-.:"`
}

// New creates a Config with defaults. Context is accepted first to follow
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":3002",
		DefaultNum1:             "4",
		DefaultNum2:             "6",
		ReportInvalidInput:      false,
		ReadTimeoutMS:           10_000,
		WriteTimeoutMS:          10_000,
		IdleTimeoutMS:           60_000,
		ReadHeaderTimeoutMS:     5_000,
		ShutdownTimeoutMS:       30_000,
		SystemMetricsIntervalMS: 10_000,
		MetricsNamespace:        "calc",
		MetricsSubsystem:        "api",
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration { return ms(c.ReadTimeoutMS) }

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration { return ms(c.WriteTimeoutMS) }

// IdleTimeout returns IdleTimeoutMS as a duration.
func (c *Config) IdleTimeout() time.Duration { return ms(c.IdleTimeoutMS) }

// ReadHeaderTimeout returns ReadHeaderTimeoutMS as a duration.
func (c *Config) ReadHeaderTimeout() time.Duration { return ms(c.ReadHeaderTimeoutMS) }

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration { return ms(c.ShutdownTimeoutMS) }

// SystemMetricsInterval returns SystemMetricsIntervalMS as a duration.
func (c *Config) SystemMetricsInterval() time.Duration { return ms(c.SystemMetricsIntervalMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
