package config

import (
	"time"

	"github.com/rickgao/market-loader/internal/model"
)

// Default values for optional configuration fields.
const (
	DefaultInstanceID      = "market-loader"
	DefaultProviderURL     = "https://query1.finance.yahoo.com"
	DefaultProviderTimeout = 30 * time.Second
	DefaultMaxAttempts     = 3
	DefaultRetryDelay      = 5 * time.Second
	DefaultDriver          = "mysql"
	DefaultMySQLPort       = 3306
	DefaultPostgresPort    = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultDBTimeout       = 10 * time.Second
	DefaultLoadTimezone    = "CET"
	DefaultHealthPort      = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// DefaultInstruments is the built-in instrument list used when the config
// file names none.
func DefaultInstruments() []model.Instrument {
	return []model.Instrument{
		{Ticker: "EURUSD=X", Alias: "EURUSD", Interval: model.Interval1Min, Period: "8d"},
		{Ticker: "SXR8.DE", Alias: "iShares Core S&P 500 ETF", Interval: model.Interval1Min, Period: "8d"},
		{Ticker: "^GSPC", Alias: "S&P 500", Interval: model.Interval1Min, Period: "8d"},
	}
}

// ApplyDefaults fills unset optional fields.
func (c *LoaderConfig) ApplyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}

	// Provider defaults
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = DefaultProviderURL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}

	// Fetch defaults
	if c.Fetch.MaxAttempts == 0 {
		c.Fetch.MaxAttempts = DefaultMaxAttempts
	}
	if c.Fetch.RetryDelay == 0 {
		c.Fetch.RetryDelay = DefaultRetryDelay
	}

	applyDBDefaults(&c.Database)

	if c.Load.Timezone == "" {
		c.Load.Timezone = DefaultLoadTimezone
	}

	if c.Schedule.HealthPort == 0 {
		c.Schedule.HealthPort = DefaultHealthPort
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	if len(c.Instruments) == 0 {
		c.Instruments = DefaultInstruments()
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Driver == "" {
		db.Driver = DefaultDriver
	}
	if db.Port == 0 {
		switch db.Driver {
		case "postgres":
			db.Port = DefaultPostgresPort
		default:
			db.Port = DefaultMySQLPort
		}
	}
	if db.Driver == "postgres" && db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.ConnectTimeout == 0 {
		db.ConnectTimeout = DefaultDBTimeout
	}
	if db.ReadTimeout == 0 {
		db.ReadTimeout = DefaultDBTimeout
	}
	if db.WriteTimeout == 0 {
		db.WriteTimeout = DefaultDBTimeout
	}
}
