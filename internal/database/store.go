package database

import (
	"context"
	"fmt"

	"github.com/rickgao/market-loader/internal/config"
	"github.com/rickgao/market-loader/internal/model"
)

// Table is the destination table.
const Table = "market_data"

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Store writes records inside a single transaction.
type Store interface {
	// InsertIfAbsent writes rec unless its key already exists. It reports
	// whether a row was inserted; a duplicate is not an error.
	InsertIfAbsent(ctx context.Context, rec model.Record) (bool, error)

	// Commit commits the run's transaction.
	Commit(ctx context.Context) error

	// Close rolls back an uncommitted transaction and releases the connection.
	Close(ctx context.Context) error
}

// Open connects to the configured database and begins a transaction.
func Open(ctx context.Context, cfg config.DBConfig) (Store, error) {
	switch cfg.Driver {
	case DriverMySQL:
		s, err := OpenMySQL(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
