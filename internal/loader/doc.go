// Package loader writes fetched bars to the market_data store.
//
// Every row is written with insert-if-absent semantics: a bar whose
// (ticker, interval_type, timestamp) already exists is skipped, not an error.
// A failing row is logged and the rest of the batch still runs. The loader
// never commits; the caller owns the transaction.
package loader
