package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calcapi"
	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
	"go-chi-calculator/internal/session"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to a YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	cfg, v, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger(observability.LogOptions{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	config.Watch(v, func(next *config.Config) {
		if err := observability.SetLevel(next.Log.Level); err != nil {
			observability.Logger.Warn("config reload ignored", zap.Error(err))
			return
		}
		observability.Logger.Info("config reloaded", zap.String("log_level", next.Log.Level))
	}, func(err error) {
		observability.Logger.Warn("config reload failed", zap.Error(err))
	})

	// Tracing, metrics and OTLP logs
	telemetryShutdown, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		panic(err)
	}
	defer telemetryShutdown(context.Background())

	// Sessions
	store, ready, closeStore, err := openStore(ctx, cfg, observability.Logger)
	if err != nil {
		observability.Logger.Fatal("session store unavailable", zap.Error(err))
	}
	defer closeStore()

	backspace, err := calculator.ParseBackspacePolicy(cfg.Calculator.Backspace)
	if err != nil {
		panic(err)
	}

	svc := session.NewService(store, observability.Logger, calculator.WithBackspacePolicy(backspace))

	cleaner := session.NewCleaner(store, observability.Logger, cfg.Session.IdleTTL, cfg.Session.CleanupInterval)
	go cleaner.Run(ctx)

	// Router
	router := server.NewRouter(server.Deps{
		Calculator: calcapi.NewHandler(svc),
		Ready:      ready,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("session_store", cfg.Session.Store),
			zap.String("backspace", backspace.String()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	waitForShutdown(srv, cfg.HTTP.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	observability.Logger.Info("server stopped")
}
