package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kycscan/internal/liveness/models"
)

const (
	redisSessionKeyPrefix = "liveness:session:"
	maxUpdateAttempts     = 10
)

// RedisStore persists sessions in Redis so several replicas can share them.
// Update uses WATCH/MULTI, so concurrent frames for one subject on different
// replicas are applied one after the other. Every write refreshes the key
// TTL, which is how idle sessions expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, subjectID string) (*models.Session, error) {
	session, err := getSession(ctx, s.client, sessionKey(subjectID))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("subject %q: %w", subjectID, ErrNotFound)
	}
	return session, nil
}

func (s *RedisStore) Update(ctx context.Context, subjectID string, fn UpdateFunc) error {
	key := sessionKey(subjectID)
	txf := func(tx *redis.Tx) error {
		current, err := getSession(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		var payload []byte
		if next != nil {
			if payload, err = json.Marshal(next); err != nil {
				return fmt.Errorf("encode liveness session: %w", err)
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("subject %q: %w", subjectID, ErrConflict)
}

func (s *RedisStore) Save(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode liveness session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SubjectID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save liveness session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, subjectID string) error {
	if err := s.client.Del(ctx, sessionKey(subjectID)).Err(); err != nil {
		return fmt.Errorf("delete liveness session: %w", err)
	}
	return nil
}

// DeleteIdle is a no-op: Redis expires idle sessions through key TTLs.
func (s *RedisStore) DeleteIdle(context.Context, time.Time) (int, error) {
	return 0, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// getSession returns nil, nil when the key does not exist.
func getSession(ctx context.Context, g getter, key string) (*models.Session, error) {
	data, err := g.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load liveness session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode liveness session: %w", err)
	}
	return &session, nil
}

func sessionKey(subjectID string) string {
	return redisSessionKeyPrefix + subjectID
}
