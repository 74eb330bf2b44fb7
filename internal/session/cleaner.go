package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Cleaner removes sessions idle for longer than ttl on a schedule.
type Cleaner struct {
	store    Store
	logger   *zap.Logger
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewCleaner(store Store, logger *zap.Logger, ttl, interval time.Duration) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cleaner{
		store:    store,
		logger:   logger,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil || c.ttl <= 0 || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("session cleaner stopped", zap.NamedError("reason", ctx.Err()))
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Sweep deletes expired sessions once and returns how many it removed.
func (c *Cleaner) Sweep(ctx context.Context) int {
	sessions, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("session cleaner list failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, s := range sessions {
		if c.now().Sub(s.UpdatedAt) <= c.ttl {
			continue
		}

		if !c.remove(ctx, s.ID) {
			continue
		}

		removed++
		c.logger.Info("idle session removed", zap.String("session_id", s.ID), zap.Time("updated_at", s.UpdatedAt))
	}

	activeSessions.Set(float64(len(sessions) - removed))
	return removed
}

// remove deletes one session under its lock. A session busy with a Press is
// left for the next sweep, since the Press refreshes its UpdatedAt anyway.
func (c *Cleaner) remove(ctx context.Context, id string) bool {
	unlock, err := c.store.Lock(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrSessionLocked) {
			c.logger.Error("session cleaner failed to lock session", zap.String("session_id", id), zap.Error(err))
		}
		return false
	}
	defer unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			c.logger.Error("session cleaner failed to delete session", zap.String("session_id", id), zap.Error(err))
		}
		return false
	}
	return true
}
