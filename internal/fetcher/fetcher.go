// Package fetcher retrieves bar series for an instrument, retrying empty or
// failed responses with a fixed delay.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rickgao/market-loader/internal/model"
	"github.com/rickgao/market-loader/internal/retry"
)

// ErrEmpty marks an attempt that returned no bars.
var ErrEmpty = errors.New("provider returned no data")

// Provider returns the bars of one symbol.
type Provider interface {
	FetchBars(ctx context.Context, symbol string, interval model.Interval, period model.Period) ([]model.Bar, error)
}

// ProviderFunc is a function adapter for Provider.
type ProviderFunc func(ctx context.Context, symbol string, interval model.Interval, period model.Period) ([]model.Bar, error)

func (f ProviderFunc) FetchBars(ctx context.Context, symbol string, interval model.Interval, period model.Period) ([]model.Bar, error) {
	return f(ctx, symbol, interval, period)
}

// Config holds fetcher configuration.
type Config struct {
	MaxAttempts int           // Attempts per instrument
	RetryDelay  time.Duration // Pause between attempts
}

// Fetcher wraps a Provider with the retry policy.
type Fetcher struct {
	cfg      Config
	provider Provider
	logger   *slog.Logger
}

// New creates a new Fetcher.
func New(cfg Config, provider Provider, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
	}
}

// Fetch returns the instrument's bars ordered by time. It returns an empty
// result, never an error, once every attempt has failed or come back empty.
func (f *Fetcher) Fetch(ctx context.Context, inst model.Instrument) []model.Bar {
	logger := f.logger.With(
		"ticker", inst.Ticker,
		"interval", inst.Interval,
		"period", inst.Period,
	)
	logger.Info("fetching bars", "name", inst.Name())

	var bars []model.Bar
	policy := retry.Policy{
		MaxAttempts: f.cfg.MaxAttempts,
		Delay:       f.cfg.RetryDelay,
		OnRetry: func(attempt int, err error) {
			if errors.Is(err, ErrEmpty) {
				logger.Warn("empty response, retrying",
					"attempt", attempt,
					"max_attempts", f.cfg.MaxAttempts,
					"delay", f.cfg.RetryDelay,
				)
				return
			}
			logger.Warn("fetch failed, retrying",
				"attempt", attempt,
				"max_attempts", f.cfg.MaxAttempts,
				"delay", f.cfg.RetryDelay,
				"error", err,
			)
		},
	}

	err := policy.Do(ctx, func(ctx context.Context, attempt int) error {
		result, err := f.provider.FetchBars(ctx, inst.Ticker, inst.Interval, inst.Period)
		if err != nil {
			return err
		}
		if len(result) == 0 {
			return ErrEmpty
		}
		bars = result
		return nil
	})
	if err != nil {
		logger.Error("giving up on instrument",
			"max_attempts", f.cfg.MaxAttempts,
			"error", err,
		)
		return nil
	}

	model.SortBars(bars)

	logger.Info("bars fetched", "count", len(bars))
	return bars
}
