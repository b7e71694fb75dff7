package model

import (
	"sort"
	"time"
)

// -----------------------------------------------------------------------------
// Configuration Types
// -----------------------------------------------------------------------------

// Instrument is one entry of the static list of instruments to load.
type Instrument struct {
	Ticker   string   `yaml:"ticker"`   // Provider symbol (e.g., "EURUSD=X")
	Alias    string   `yaml:"alias"`    // Display name (e.g., "EURUSD")
	Interval Interval `yaml:"interval"` // Sampling interval (e.g., "1m")
	Period   Period   `yaml:"period"`   // Lookback period (e.g., "8d")
}

// Name returns the alias when set, otherwise the ticker.
func (i Instrument) Name() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Ticker
}

// -----------------------------------------------------------------------------
// Fetched Types
// -----------------------------------------------------------------------------

// Bar is one OHLCV observation as returned by the provider.
//
// Exactly one of Datetime or Date is set: Datetime for intraday intervals,
// Date (midnight in the exchange time zone) for daily and coarser intervals.
type Bar struct {
	Datetime time.Time
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
}

// Time returns the bar's time index, preferring Datetime over Date.
func (b Bar) Time() time.Time {
	if !b.Datetime.IsZero() {
		return b.Datetime
	}
	return b.Date
}

// SortBars orders bars by their time index, oldest first.
func SortBars(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time().Before(bars[j].Time())
	})
}

// -----------------------------------------------------------------------------
// Persisted Types
// -----------------------------------------------------------------------------

// Record is one row of the market_data table.
// (Ticker, IntervalType, Timestamp) is unique.
type Record struct {
	Ticker       string
	IntervalType string
	Timestamp    time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       int64
	LoadedAt     time.Time
}

// NewRecord builds the record for a bar. The timestamp is normalized to UTC.
func NewRecord(ticker string, interval Interval, bar Bar, loadedAt time.Time) Record {
	return Record{
		Ticker:       ticker,
		IntervalType: string(interval),
		Timestamp:    bar.Time().UTC(),
		Open:         bar.Open,
		High:         bar.High,
		Low:          bar.Low,
		Close:        bar.Close,
		Volume:       bar.Volume,
		LoadedAt:     loadedAt,
	}
}
