// Package cache provides a redis-backed key/value store used by the
// cache smoke-test endpoints.
package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned when a key is absent from the store.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the key/value operations the API needs.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
}

// redisStore implements Store on top of a redis client.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(addr, password string) Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	return &redisStore{client: client}
}

// Set stores a key-value pair without expiry.
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Get retrieves a value by key.
func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

// Ping checks connectivity for the health endpoint.
func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
