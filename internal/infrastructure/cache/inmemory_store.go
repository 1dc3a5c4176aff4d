package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryStore implements Store using process memory.
// It serves single-instance deployments and tests; state is not shared across processes.
type InMemoryStore struct {
	entries sync.Map // map[string]*cacheEntry
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewInMemoryStore creates an in-memory store with a background expiry sweep
func NewInMemoryStore() *InMemoryStore {
	s := &InMemoryStore{stopCh: make(chan struct{})}
	go s.cleanupExpired(defaultCleanupInterval)
	return s
}

// Get retrieves a copy of the value stored under key
func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if value, ok := s.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired(time.Now()) {
			atomic.AddInt64(&s.hits, 1)
			out := make([]byte, len(entry.value))
			copy(out, entry.value)
			return out, true, nil
		}
		s.entries.Delete(key)
	}
	atomic.AddInt64(&s.misses, 1)
	return nil, false, nil
}

// Set stores a copy of value under key
func (s *InMemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := &cacheEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries.Store(key, entry)
	return nil
}

// Delete removes keys
func (s *InMemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.entries.Delete(key)
	}
	return nil
}

// Close stops the expiry sweep
func (s *InMemoryStore) Close() error {
	if atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		close(s.stopCh)
	}
	return nil
}

// Stats returns the hit and miss counters
func (s *InMemoryStore) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

func (s *InMemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			s.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired(now) {
					s.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ Store = (*InMemoryStore)(nil)
