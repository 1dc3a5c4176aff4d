package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

const defaultSnapshotTTL = 5 * time.Minute

// ProductSnapshotCache caches product read models as JSON
type ProductSnapshotCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductSnapshotCache creates a snapshot cache over store
func NewProductSnapshotCache(store Store, ttl time.Duration, logger *zap.Logger) *ProductSnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductSnapshotCache{store: store, ttl: ttl, logger: logger}
}

func snapshotKey(id uuid.UUID) string {
	return fmt.Sprintf("product:snapshot:%s", id)
}

// Get returns the cached snapshot, or nil on a miss
func (c *ProductSnapshotCache) Get(ctx context.Context, id uuid.UUID) (*inventory.ProductSnapshot, error) {
	key := snapshotKey(id)
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		c.logger.Debug("Cache miss for product snapshot", zap.String("product_id", id.String()))
		return nil, nil
	}

	var snapshot inventory.ProductSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Error("Failed to unmarshal product snapshot",
			zap.String("product_id", id.String()),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.store.Delete(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set stores snapshot for the configured TTL
func (c *ProductSnapshotCache) Set(ctx context.Context, snapshot inventory.ProductSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.store.Set(ctx, snapshotKey(snapshot.ID), data, c.ttl)
}

// Delete drops the snapshots of ids
func (c *ProductSnapshotCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKey(id)
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return err
	}
	c.logger.Debug("Invalidated product snapshots", zap.Int("count", len(ids)))
	return nil
}
