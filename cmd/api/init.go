package main

import (
	"context"

	"go-chi-calculator/internal/calcapi"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calcapi.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry starts the OTLP trace, metric and (optionally) log pipelines.
// With telemetry disabled only the calculator instruments are registered, on
// the global no-op meter.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context), error) {
	if !cfg.Enabled {
		return func(context.Context) {}, calcapi.InitMetrics()
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, err
	}

	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		_ = traceShutdown(ctx)
		return nil, err
	}

	shutdowns := []func(context.Context) error{metricShutdown, traceShutdown}

	if cfg.Logs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			_ = metricShutdown(ctx)
			_ = traceShutdown(ctx)
			return nil, err
		}
		shutdowns = append([]func(context.Context) error{logShutdown}, shutdowns...)
	}

	return func(ctx context.Context) {
		for _, shutdown := range shutdowns {
			_ = shutdown(ctx)
		}
	}, nil
}
