// Package settings serves the runtime-editable system settings
package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplements/backend/internal/domain/settings"
	"github.com/supplements/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// RateCache caches the stored exchange rate
type RateCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool, error)
	Set(ctx context.Context, rate decimal.Decimal) error
	Invalidate(ctx context.Context) error
}

// UpdateExchangeRateRequest replaces the USD to GTQ rate
type UpdateExchangeRateRequest struct {
	USDToGTQRate decimal.Decimal `json:"usd_to_gtq_rate" binding:"required"`
}

// ExchangeRateResponse represents the current rate
type ExchangeRateResponse struct {
	USDToGTQRate decimal.Decimal `json:"usd_to_gtq_rate"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// ConversionResponse is a USD to GTQ conversion at the current rate
type ConversionResponse struct {
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	AmountGTQ    decimal.Decimal `json:"amount_gtq"`
	USDToGTQRate decimal.Decimal `json:"usd_to_gtq_rate"`
}

// Service handles the exchange rate setting. Receipts read the rate from the
// database inside their own transaction; the cache only serves reads here.
type Service struct {
	repo   settings.Repository
	cache  RateCache
	logger *zap.Logger
}

// NewService creates a new settings Service
func NewService(repo settings.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// SetRateCache enables rate caching
func (s *Service) SetRateCache(cache RateCache) {
	s.cache = cache
}

// Bootstrap stores defaultRate when no settings row exists yet
func (s *Service) Bootstrap(ctx context.Context, defaultRate decimal.Decimal) error {
	seed, err := settings.NewSystemSettingsWithRate(defaultRate)
	if err != nil {
		return err
	}
	created, err := s.repo.Seed(ctx, seed)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("exchange rate initialised", zap.String("usd_to_gtq_rate", seed.USDToGTQRate.String()))
	}
	return nil
}

// GetExchangeRate returns the current rate
func (s *Service) GetExchangeRate(ctx context.Context) (*ExchangeRateResponse, error) {
	if s.cache != nil {
		rate, found, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("exchange rate cache read failed", zap.Error(err))
		} else if found {
			return &ExchangeRateResponse{USDToGTQRate: rate}, nil
		}
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, current.USDToGTQRate)

	updatedAt := current.UpdatedAt
	return &ExchangeRateResponse{USDToGTQRate: current.USDToGTQRate, UpdatedAt: &updatedAt}, nil
}

// UpdateExchangeRate replaces the rate. Purchases already received keep the rate they captured.
func (s *Service) UpdateExchangeRate(ctx context.Context, req UpdateExchangeRateRequest) (*ExchangeRateResponse, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	previous := current.USDToGTQRate
	if err := current.UpdateExchangeRate(req.USDToGTQRate); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	s.remember(ctx, current.USDToGTQRate)

	s.logger.Info("exchange rate updated",
		zap.String("previous", previous.String()),
		zap.String("usd_to_gtq_rate", current.USDToGTQRate.String()),
	)
	updatedAt := current.UpdatedAt
	return &ExchangeRateResponse{USDToGTQRate: current.USDToGTQRate, UpdatedAt: &updatedAt}, nil
}

// ConvertUSD converts amountUSD to GTQ at the current rate
func (s *Service) ConvertUSD(ctx context.Context, amountUSD decimal.Decimal) (*ConversionResponse, error) {
	current, err := s.GetExchangeRate(ctx)
	if err != nil {
		return nil, err
	}
	gtq, err := valueobject.ToGTQ(amountUSD, current.USDToGTQRate)
	if err != nil {
		return nil, err
	}
	return &ConversionResponse{
		AmountUSD:    amountUSD,
		AmountGTQ:    gtq,
		USDToGTQRate: current.USDToGTQRate,
	}, nil
}

// remember writes rate to the cache, dropping the entry when the write fails
func (s *Service) remember(ctx context.Context, rate decimal.Decimal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, rate); err != nil {
		s.logger.Warn("exchange rate cache write failed", zap.Error(err))
		_ = s.cache.Invalidate(ctx)
	}
}
