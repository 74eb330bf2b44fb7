package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/session"
)

// openStore builds the configured session store and a readiness check for it.
// The returned close func releases the backing connection, if any.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(context.Context) error, func() error, error) {
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}

		ready := func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		return session.NewRedisStore(client, logger, cfg.Session.IdleTTL), ready, client.Close, nil

	default:
		return session.NewMemoryStore(), nil, func() error { return nil }, nil
	}
}
