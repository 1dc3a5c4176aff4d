package cache

import (
	"fmt"

	"github.com/supplements/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates cache stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable.
// Otherwise it falls back to an in-memory store if fallback is allowed.
func (f *StoreFactory) CreateStore() (Store, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory cache store")
		return NewInMemoryStore(), nil
	}

	store, err := NewRedisStore(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis cache store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cache but unavailable: %w", err)
	}

	// Snapshots may go stale across instances with a per-process store
	f.logger.Warn("Redis unavailable, falling back to in-memory cache store",
		zap.Error(err),
	)
	return NewInMemoryStore(), nil
}
