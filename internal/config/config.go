// Package config loads service configuration from .env, an optional YAML
// file and CALC_* environment variables.
package config

import "time"

// Config holds runtime configuration for the calculator service.
type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Log        LogConfig        `mapstructure:"log"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Session    SessionConfig    `mapstructure:"session"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// TelemetryConfig switches the OTLP exporters. The OTLP endpoint itself comes
// from the standard OTEL_EXPORTER_OTLP_* variables.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Logs    bool `mapstructure:"logs"`
}

type SessionConfig struct {
	Store           string        `mapstructure:"store" validate:"oneof=memory redis"`
	IdleTTL         time.Duration `mapstructure:"idle_ttl" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gte=0"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type CalculatorConfig struct {
	Backspace string `mapstructure:"backspace" validate:"oneof=zero empty"`
}
