package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/supplements/backend/internal/infrastructure/config"
)

// Store is the byte-level key/value store behind the typed caches.
// Get reports a miss with found=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RedisStore implements Store using Redis
type RedisStore struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisStore connects to Redis and returns a store owning the client
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: client, ownsClient: true}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves the raw value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key. A zero ttl keeps the key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys from cache: %w", err)
	}
	return nil
}

// Close closes the client if the store created it
func (s *RedisStore) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Close()
}

// Client returns the underlying Redis client
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

var _ Store = (*RedisStore)(nil)
