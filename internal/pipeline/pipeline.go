// Package pipeline runs one fetch-and-load pass over the configured instruments.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/market-loader/internal/loader"
	"github.com/rickgao/market-loader/internal/model"
)

// Store is the transactional store a run writes to.
type Store interface {
	loader.Store
	Commit(ctx context.Context) error
	Close(ctx context.Context) error
}

// OpenFunc opens the store for one run.
type OpenFunc func(ctx context.Context) (Store, error)

// BarFetcher returns an instrument's bars, empty when none could be fetched.
type BarFetcher interface {
	Fetch(ctx context.Context, inst model.Instrument) []model.Bar
}

// AssetResult is the outcome for one instrument.
type AssetResult struct {
	Ticker  string
	Name    string // Alias, or the ticker when none is set
	Fetched int
	Metrics loader.Metrics
	Skipped bool // No data after all fetch attempts
}

// Summary is the outcome of a run.
type Summary struct {
	RunID          uuid.UUID
	StartedAt      time.Time
	Duration       time.Duration
	TotalInserted  int
	AssetsWithData int
	AssetsTotal    int
	Assets         []AssetResult
	Committed      bool
}

// Runner executes runs. It is not safe for concurrent use.
type Runner struct {
	instruments []model.Instrument
	fetcher     BarFetcher
	open        OpenFunc
	loadTZ      *time.Location
	logger      *slog.Logger
}

// NewRunner creates a new Runner. loadTZ is the zone of loaded_at.
func NewRunner(instruments []model.Instrument, fetcher BarFetcher, open OpenFunc, loadTZ *time.Location, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		instruments: instruments,
		fetcher:     fetcher,
		open:        open,
		loadTZ:      loadTZ,
		logger:      logger,
	}
}

// Run performs one pass: open the store, fetch and load every instrument in
// order, commit once, and close. Instruments without data are skipped. The
// error is non-nil only when the run as a whole failed (open, commit, or a
// panic); the summary is filled in as far as the run got.
func (r *Runner) Run(ctx context.Context) (summary Summary, err error) {
	summary = Summary{
		RunID:       uuid.New(),
		StartedAt:   time.Now(),
		AssetsTotal: len(r.instruments),
	}
	logger := r.logger.With("run_id", summary.RunID)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("run panicked: %v", p)
		}
		summary.Duration = time.Since(summary.StartedAt)
		if err != nil {
			logger.Error("run failed",
				"error", err,
				"inserted", summary.TotalInserted,
				"assets_with_data", summary.AssetsWithData,
				"assets_total", summary.AssetsTotal,
				"duration", summary.Duration,
			)
		}
	}()

	logger.Info("run started", "instruments", len(r.instruments))

	store, err := r.open(ctx)
	if err != nil {
		return summary, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store connected")

	defer func() {
		// Close with a fresh context so a cancelled run still releases the connection.
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if cerr := store.Close(closeCtx); cerr != nil {
			logger.Warn("close store", "error", cerr)
			if !summary.Committed {
				err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
			}
		}
	}()

	ld := loader.New(store, r.loadTZ, logger)

	for _, inst := range r.instruments {
		if ctx.Err() != nil {
			break
		}

		result := AssetResult{Ticker: inst.Ticker, Name: inst.Name()}

		bars := r.fetcher.Fetch(ctx, inst)
		result.Fetched = len(bars)
		if len(bars) == 0 {
			logger.Warn("no data, skipping instrument", "ticker", inst.Ticker, "name", inst.Name())
			result.Skipped = true
			summary.Assets = append(summary.Assets, result)
			continue
		}

		result.Metrics = ld.Load(ctx, bars, inst.Ticker, inst.Interval)
		summary.TotalInserted += result.Metrics.Inserts
		summary.AssetsWithData++
		summary.Assets = append(summary.Assets, result)
	}

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted: %w", err)
	}

	if err := store.Commit(ctx); err != nil {
		return summary, err
	}
	summary.Committed = true

	logger.Info("run complete",
		"inserted", summary.TotalInserted,
		"assets_with_data", summary.AssetsWithData,
		"assets_total", summary.AssetsTotal,
		"duration", time.Since(summary.StartedAt),
	)

	return summary, nil
}
