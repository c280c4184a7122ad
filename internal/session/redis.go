// Wellness Escape | 2026
// redis.go

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wellnessescape/backend/internal/core"
)

const redisKeyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(
	ctx context.Context,
	tokenHash string,
	sess Session,
) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("save session: already expired")
	}

	if err := s.client.Set(ctx, redisKeyPrefix+tokenHash, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Redis TTL already bounds the lifetime; the explicit check guards
	// against clock drift between writer and reader.
	if sess.IsExpired() {
		return nil, core.ErrNotFound
	}

	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
