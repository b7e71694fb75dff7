// Package model defines the data types shared by the fetcher, loader and store.
//
// Conventions:
//   - Intervals and periods use the provider's codes ("1m", "8d")
//   - Record timestamps are UTC instants
//   - Volume is an integer share/contract count, 0 when the provider omits it
package model
