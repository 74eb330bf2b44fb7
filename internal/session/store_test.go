package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-chi-calculator/internal/calculator"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// storeFactories runs the shared contract against both backends.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()

	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"redis": func() Store {
			client, _ := setupTestRedis(t)
			return NewRedisStore(client, zap.NewNop(), time.Hour)
		},
	}
}

func testSession(id string) *Session {
	c := calculator.New()
	c.InputDigit('4')
	c.InputOperator(calculator.Add)

	return &Session{
		ID:        id,
		State:     c.Snapshot(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			ctx := context.Background()

			sess := testSession("abc")
			require.NoError(t, store.Save(ctx, sess))
			assert.False(t, sess.UpdatedAt.IsZero())

			got, err := store.Get(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, sess.ID, got.ID)
			assert.Equal(t, sess.State, got.State)
		})
	}
}

func TestStore_GetNotFound(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			got, err := newStore().Get(context.Background(), "missing")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, testSession("abc")))
			require.NoError(t, store.Delete(ctx, "abc"))

			_, err := store.Get(ctx, "abc")
			assert.ErrorIs(t, err, ErrSessionNotFound)

			assert.ErrorIs(t, store.Delete(ctx, "abc"), ErrSessionNotFound)
		})
	}
}

func TestStore_List(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			ctx := context.Background()

			for _, id := range []string{"a", "b", "c"} {
				require.NoError(t, store.Save(ctx, testSession(id)))
			}

			sessions, err := store.List(ctx)
			require.NoError(t, err)

			ids := make([]string, 0, len(sessions))
			for _, s := range sessions {
				ids = append(ids, s.ID)
			}
			assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
		})
	}
}

func TestStore_LockIsExclusive(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore()
			ctx := context.Background()

			unlock, err := store.Lock(ctx, "abc")
			require.NoError(t, err)

			_, err = store.Lock(ctx, "abc")
			assert.ErrorIs(t, err, ErrSessionLocked)

			other, err := store.Lock(ctx, "other")
			require.NoError(t, err)
			other()

			unlock()

			again, err := store.Lock(ctx, "abc")
			require.NoError(t, err)
			again()
		})
	}
}

func TestRedisStore_SessionsExpireAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, zap.NewNop(), time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("abc")))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_LockExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, zap.NewNop(), time.Minute)
	ctx := context.Background()

	_, err := store.Lock(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(lockTTL + time.Second)

	unlock, err := store.Lock(ctx, "abc")
	require.NoError(t, err)
	unlock()
}

func TestRedisStore_ListSkipsUndecodableValues(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, zap.NewNop(), time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("good")))
	require.NoError(t, mr.Set(sessionKey("bad"), "{not json"))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "good", sessions[0].ID)
}

func TestMemoryStore_UnlockDropsLocksForUnsavedIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	unlock, err := store.Lock(ctx, "ghost")
	require.NoError(t, err)
	unlock()

	require.NoError(t, store.Save(ctx, testSession("abc")))
	unlock, err = store.Lock(ctx, "abc")
	require.NoError(t, err)
	unlock()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.NotContains(t, store.locks, "ghost")
	assert.Contains(t, store.locks, "abc")
}

func TestRedisStore_ExpiredHolderCannotReleaseNextLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	core, logs := observer.New(zap.WarnLevel)
	store := NewRedisStore(client, zap.New(core), time.Minute)
	ctx := context.Background()

	unlockA, err := store.Lock(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(lockTTL + time.Second)

	unlockB, err := store.Lock(ctx, "abc")
	require.NoError(t, err)

	unlockA()
	assert.Equal(t, 1, logs.FilterMessage("session lock expired before release").Len())

	_, err = store.Lock(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionLocked)

	unlockB()

	unlockC, err := store.Lock(ctx, "abc")
	require.NoError(t, err)
	unlockC()
}
