package cache

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

const exchangeRateKey = "settings:usd_to_gtq_rate"

// ExchangeRateCache caches the stored USD to GTQ rate. Entries do not
// expire; UpdateExchangeRate overwrites them.
type ExchangeRateCache struct {
	store Store
}

// NewExchangeRateCache creates a rate cache over store
func NewExchangeRateCache(store Store) *ExchangeRateCache {
	return &ExchangeRateCache{store: store}
}

// Get returns the cached rate and whether one was present
func (c *ExchangeRateCache) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	data, found, err := c.store.Get(ctx, exchangeRateKey)
	if err != nil || !found {
		return decimal.Zero, false, err
	}
	rate, err := decimal.NewFromString(string(data))
	if err != nil {
		_ = c.store.Delete(ctx, exchangeRateKey)
		return decimal.Zero, false, fmt.Errorf("failed to parse cached exchange rate: %w", err)
	}
	return rate, true, nil
}

// Set stores rate
func (c *ExchangeRateCache) Set(ctx context.Context, rate decimal.Decimal) error {
	return c.store.Set(ctx, exchangeRateKey, []byte(rate.String()), 0)
}

// Invalidate drops the cached rate
func (c *ExchangeRateCache) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, exchangeRateKey)
}
