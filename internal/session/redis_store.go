package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in redis with a TTL matching the session
// expiry, so stale entries vanish without any cleanup pass.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) key(id string) string {
	return keyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	if s.ID == "" || s.UserID == "" {
		return errors.New("session: missing id or user id")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session: expiry must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.ID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
