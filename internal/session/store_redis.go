package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"workbench/pkg/platform/sentinel"
)

const sessionKeyPrefix = "workbench:session:"

// RedisSessionStore shares sessions across instances. Expiry is delegated to
// Redis TTLs so no sweeper is needed.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return sentinel.ErrInvalidState
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
