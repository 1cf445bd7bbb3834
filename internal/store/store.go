// Package store persists coins, daily history and snapshots with strict
// per-(symbol, date) uniqueness. Every write is an upsert, so the pipeline can
// safely retry or overlap chunk windows without duplicating rows.
package store

import (
	"context"
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
)

// Store is the persistence contract the pipeline runs against.
type Store interface {
	// EnsureSchema creates the tables and uniqueness constraints if missing.
	EnsureSchema(ctx context.Context) error

	// UpsertCoins inserts tracked assets, ignoring symbols already present.
	UpsertCoins(ctx context.Context, coins []model.Coin) error

	// UpsertDayRecords writes daily candles for a symbol, refreshing values on
	// (symbol, date) conflict. Records that are not persistable relative to
	// today (all-zero prices, before the history cutoff, or dated today) are
	// skipped. Returns the number of rows written.
	UpsertDayRecords(ctx context.Context, symbol string, records []model.DayRecord, today time.Time) (int, error)

	// UpsertSnapshot writes one snapshot row, refreshing on conflict.
	UpsertSnapshot(ctx context.Context, snap model.Snapshot) error

	// LatestHistoricalDate returns the most recent stored candle date for a
	// symbol. ok is false when the symbol has no history.
	LatestHistoricalDate(ctx context.Context, symbol string) (date time.Time, ok bool, err error)

	// SnapshotExists reports whether a snapshot row exists for (symbol, date).
	SnapshotExists(ctx context.Context, symbol string, date time.Time) (bool, error)

	// ListTrackedSymbols returns all tracked symbols in lexical order.
	ListTrackedSymbols(ctx context.Context) ([]string, error)
}
