package loader

import (
	"context"
	"log/slog"
	"time"

	"github.com/rickgao/market-loader/internal/model"
)

// Store is the write side of the market_data table.
type Store interface {
	InsertIfAbsent(ctx context.Context, rec model.Record) (bool, error)
}

// Metrics counts the outcome of each row in a batch.
type Metrics struct {
	Inserts    int // Rows newly written
	Duplicates int // Rows skipped because the key existed
	Errors     int // Rows whose write failed
}

// Attempted returns the number of rows sent to the store.
func (m Metrics) Attempted() int {
	return m.Inserts + m.Duplicates + m.Errors
}

// Loader turns bars into records and writes them.
type Loader struct {
	store  Store
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// New creates a new Loader. loc is the zone of the loaded_at timestamp.
func New(store Store, loc *time.Location, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Loader{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// Load writes bars for one instrument and returns the per-row outcome.
// Metrics.Inserts is the number of rows that were actually new.
func (l *Loader) Load(ctx context.Context, bars []model.Bar, ticker string, interval model.Interval) Metrics {
	var m Metrics
	if len(bars) == 0 {
		return m
	}

	start := time.Now()
	loadedAt := l.now().In(l.loc)

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			l.logger.Warn("load interrupted",
				"ticker", ticker,
				"remaining", len(bars)-m.Attempted(),
				"error", err,
			)
			break
		}

		rec := model.NewRecord(ticker, interval, bar, loadedAt)

		inserted, err := l.store.InsertIfAbsent(ctx, rec)
		if err != nil {
			l.logger.Error("insert failed",
				"ticker", ticker,
				"timestamp", rec.Timestamp,
				"error", err,
			)
			m.Errors++
			continue
		}

		if inserted {
			m.Inserts++
		} else {
			m.Duplicates++
		}
	}

	l.logger.Info("bars loaded",
		"ticker", ticker,
		"interval", interval,
		"rows", len(bars),
		"inserted", m.Inserts,
		"duplicates", m.Duplicates,
		"errors", m.Errors,
		"duration", time.Since(start),
	)

	return m
}
