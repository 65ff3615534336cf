// Package database provides the PostgreSQL connection pool and the store for
// collected futures series.
//
// Tables:
//   - open_interest, funding_rate: OHLC candles keyed by (symbol, time_ms)
//   - long_short_ratio: keyed by (symbol, exchange, time_ms)
//   - liquidations: keyed by (symbol, time_ms)
//   - collector_runs: one row per collector invocation
//
// Rows that already exist are skipped (ON CONFLICT DO NOTHING).
package database
