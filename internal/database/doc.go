// Package database provides the market_data store.
//
// A Store is one connection holding one open transaction for the duration of
// a run. Rows are written with insert-if-absent semantics keyed by
// (ticker, interval_type, timestamp):
//   - mysql: INSERT IGNORE
//   - postgres: INSERT ... ON CONFLICT DO NOTHING, one savepoint per row
//
// Per-row failures must not poison the connection. On postgres the write
// timeout is enforced by the server (statement_timeout), never by a context
// deadline: pgx closes the connection when a context expires mid-query, which
// would fail every later row and the commit. Cancelling the run's context does
// close it, and the run is then rolled back as a whole.
//
// The table itself is never created or altered here; see schema/.
package database
