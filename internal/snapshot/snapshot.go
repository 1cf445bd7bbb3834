// Package snapshot captures one current-state quote per symbol per UTC day.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/store"
)

// Capturer fetches and stores daily snapshots.
type Capturer struct {
	client *api.Client
	store  store.Store
	logger *slog.Logger
}

// NewCapturer creates a Capturer.
func NewCapturer(client *api.Client, st store.Store, logger *slog.Logger) *Capturer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capturer{client: client, store: st, logger: logger}
}

// Capture stores today's snapshot for symbol and reports whether a row was
// written. If a row already exists for today the upstream call is skipped
// entirely. A missing or malformed quote is not an error: no row is written,
// so the next run retries naturally. Only persistence failures are returned.
func (c *Capturer) Capture(ctx context.Context, symbol string, today time.Time) (bool, error) {
	exists, err := c.store.SnapshotExists(ctx, symbol, today)
	if err != nil {
		return false, fmt.Errorf("check snapshot %s: %w", symbol, err)
	}
	if exists {
		c.logger.Debug("snapshot already exists",
			"symbol", symbol,
			"date", today.Format("2006-01-02"),
		)
		return false, nil
	}

	quote, err := c.client.GetFullQuote(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		c.logger.Warn("snapshot not available",
			"symbol", symbol,
			"date", today.Format("2006-01-02"),
			"error", err,
		)
		return false, nil
	}

	if err := c.store.UpsertSnapshot(ctx, quote.ToSnapshot(symbol, today)); err != nil {
		return false, err
	}

	c.logger.Debug("snapshot saved",
		"symbol", symbol,
		"date", today.Format("2006-01-02"),
	)
	return true, nil
}
