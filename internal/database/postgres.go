package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/market-loader/internal/config"
	"github.com/rickgao/market-loader/internal/model"
)

const insertPostgres = `
	INSERT INTO ` + Table + `
	(ticker, interval_type, timestamp, open, high, low, close, volume, loaded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (ticker, interval_type, timestamp) DO NOTHING
`

// PostgresStore is a Store backed by a single pgx connection.
type PostgresStore struct {
	conn *pgx.Conn
	tx   pgx.Tx
}

// PostgresConfig builds the pgx connection config. The write timeout becomes
// the session's statement_timeout, so a slow row fails on its own and the
// connection stays usable for the rest of the batch.
func PostgresConfig(cfg config.DBConfig) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if ms := cfg.WriteTimeout.Milliseconds(); ms > 0 {
		connCfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(ms, 10)
	}
	return connCfg, nil
}

// OpenPostgres connects to PostgreSQL and begins the run's transaction.
func OpenPostgres(ctx context.Context, cfg config.DBConfig) (*PostgresStore, error) {
	connCfg, err := PostgresConfig(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &PostgresStore{conn: conn, tx: tx}, nil
}

// InsertIfAbsent inserts rec with ON CONFLICT DO NOTHING. Each row runs in
// its own savepoint so a failed row leaves the transaction usable.
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, rec model.Record) (bool, error) {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("savepoint: %w", err)
	}

	ct, err := sp.Exec(ctx, insertPostgres,
		rec.Ticker,
		rec.IntervalType,
		rec.Timestamp,
		rec.Open,
		rec.High,
		rec.Low,
		rec.Close,
		rec.Volume,
		rec.LoadedAt,
	)
	if err != nil {
		sp.Rollback(ctx)
		return false, err
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("release savepoint: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

// Commit commits the transaction.
func (s *PostgresStore) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close rolls back if still open and closes the connection.
func (s *PostgresStore) Close(ctx context.Context) error {
	var rbErr error
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		rbErr = fmt.Errorf("rollback: %w", err)
	}
	return errors.Join(rbErr, s.conn.Close(ctx))
}
