// Package model defines the futures data types shared by the API client,
// the collector and the database store.
//
// Conventions:
//   - Timestamps: int64 milliseconds since Unix epoch, as Coinglass sends them
//   - Symbols: upper-case coin symbols (e.g., "BTC")
//   - Run IDs: uuid.UUID generated per collector run
package model
