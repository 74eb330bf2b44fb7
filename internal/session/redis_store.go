package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPattern  = "calculator:session:%s"
	sessionScanPattern = "calculator:session:*"
	lockKeyPattern     = "calculator:lock:%s"
	lockTTL            = 5 * time.Second
	scanBatchCount     = 100
)

// RedisStore persists sessions as JSON values that expire after the idle TTL.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisStore builds a RedisStore. A zero ttl keeps sessions until deleted.
func NewRedisStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisStore{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to get session from redis", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Error("failed to decode session", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}

	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		s.logger.Error("failed to save session in redis", zap.String("session_id", sess.ID), zap.Error(err))
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		s.logger.Error("failed to delete session", zap.String("session_id", id), zap.Error(err))
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// List scans every session key. Keys that expire mid-scan are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*Session, error) {
	var (
		cursor uint64
		result []*Session
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, sessionScanPattern, scanBatchCount).Result()
		if err != nil {
			return nil, fmt.Errorf("scan sessions: %w", err)
		}

		for _, key := range keys {
			data, err := s.client.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				return nil, fmt.Errorf("get %s: %w", key, err)
			}

			var sess Session
			if err := json.Unmarshal(data, &sess); err != nil {
				s.logger.Warn("skipping undecodable session", zap.String("key", key), zap.Error(err))
				continue
			}
			result = append(result, &sess)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return result, nil
}

// unlockScript deletes the lock only while it still carries the holder's
// token, so a holder whose lock expired cannot release the next holder's.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock takes a SETNX lock that expires on its own if the holder dies.
func (s *RedisStore) Lock(ctx context.Context, id string) (func(), error) {
	key := fmt.Sprintf(lockKeyPattern, id)
	token := uuid.New().String()

	acquired, err := s.client.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("lock session %s: %w", id, err)
	}
	if !acquired {
		return nil, ErrSessionLocked
	}

	return func() {
		// the request context may already be cancelled
		released, err := unlockScript.Run(context.WithoutCancel(ctx), s.client, []string{key}, token).Int()
		if err != nil {
			s.logger.Error("failed to release session lock", zap.String("session_id", id), zap.Error(err))
			return
		}
		if released == 0 {
			s.logger.Warn("session lock expired before release", zap.String("session_id", id))
		}
	}, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPattern, id)
}
