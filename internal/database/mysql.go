package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rickgao/market-loader/internal/config"
	"github.com/rickgao/market-loader/internal/model"
)

const insertIgnoreMySQL = `
	INSERT IGNORE INTO ` + Table + `
	(ticker, interval_type, timestamp, open, high, low, close, volume, loaded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// MySQLStore is a Store backed by a single MySQL connection.
type MySQLStore struct {
	db *sql.DB
	tx *sql.Tx
}

// OpenMySQL connects to MySQL and begins the run's transaction.
func OpenMySQL(ctx context.Context, cfg config.DBConfig) (*MySQLStore, error) {
	connector, err := mysql.NewConnector(MySQLConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &MySQLStore{db: db, tx: tx}, nil
}

// InsertIfAbsent inserts rec with INSERT IGNORE.
func (s *MySQLStore) InsertIfAbsent(ctx context.Context, rec model.Record) (bool, error) {
	res, err := s.tx.ExecContext(ctx, insertIgnoreMySQL, mysqlArgs(rec)...)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// Commit commits the transaction.
func (s *MySQLStore) Commit(ctx context.Context) error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close rolls back if still open and closes the connection.
func (s *MySQLStore) Close(ctx context.Context) error {
	var rbErr error
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		rbErr = fmt.Errorf("rollback: %w", err)
	}
	return errors.Join(rbErr, s.db.Close())
}

// mysqlArgs returns the insert parameters for rec. The connection writes
// times in UTC, so loaded_at is re-labelled to keep the wall clock of the
// zone it was captured in: a DATETIME column has no zone of its own.
func mysqlArgs(rec model.Record) []any {
	return []any{
		rec.Ticker,
		rec.IntervalType,
		rec.Timestamp.UTC(),
		rec.Open,
		rec.High,
		rec.Low,
		rec.Close,
		rec.Volume,
		wallClock(rec.LoadedAt),
	}
}

// wallClock returns t's local date and time labelled as UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
