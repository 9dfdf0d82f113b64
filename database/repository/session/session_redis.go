package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"signup/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "wizardSession:"

// RedisSessionStore implements SessionStore on a Redis client, delegating
// expiry to Redis key TTLs. Each Put writes the whole record in a single SET
// with EX, so the TTL is reset absolutely and reads never observe a partial
// session.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a SessionStore backed by the given Redis client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) Put(ctx context.Context, key string, session *models.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", key, err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, key string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch session %s: %w", key, err)
	}
	return decodeSession(data)
}

func (r *RedisSessionStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}

func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}
