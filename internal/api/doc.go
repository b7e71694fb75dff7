// Package api provides the Yahoo Finance chart client used as the bar provider.
//
// Endpoint:
//   - GET https://query1.finance.yahoo.com/v8/finance/chart/{symbol}?interval=1m&range=8d
//
// The chart payload is columnar (one array per field under
// indicators.quote[0]); ToBars flattens it into one model.Bar per timestamp.
package api
