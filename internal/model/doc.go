// Package model defines shared data types used across the coinsync pipeline.
//
// Conventions:
//   - Dates: time.Time pinned to UTC midnight (one value per calendar day)
//   - Prices and volumes: float64, zero meaning "missing" upstream
//   - Symbols: uppercase alphanumeric asset codes (e.g. "BTC")
package model
