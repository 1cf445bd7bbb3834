package backfill

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/model"
	"github.com/dmarkoski/coinsync/internal/store"
)

// Config holds backfill engine settings.
type Config struct {
	ChunkDays    int           // Maximum days requested per upstream call
	RequestDelay time.Duration // Delay between chunk requests
}

// Engine downloads a missing date interval in reverse-chronological chunks.
// A partial fill is always a valid outcome: whatever was persisted is a
// correct prefix of history, and the next run's Detector recomputes the
// remainder from the store, so no checkpoint state is kept.
type Engine struct {
	cfg    Config
	client *api.Client
	store  store.Store
	logger *slog.Logger
}

// NewEngine creates a backfill engine.
func NewEngine(cfg Config, client *api.Client, st store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, client: client, store: st, logger: logger}
}

// Backfill fills gap for symbol and returns the number of rows persisted.
// today is passed through to the store's persist-eligibility check. Upstream
// failures stop the walk without error; only persistence failures are
// returned, since they end the symbol's remaining work.
func (e *Engine) Backfill(ctx context.Context, symbol string, gap model.Gap, today time.Time) (int, error) {
	cursor := gap.End
	floor := gap.Start
	total := 0

	for !cursor.Before(floor) {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		remainingDays := int(cursor.Sub(floor).Hours()/24) + 1
		limit := e.cfg.ChunkDays
		if remainingDays < limit {
			limit = remainingDays
		}

		chunk, err := e.client.GetDailyHistory(ctx, symbol, cursor.Unix(), limit)

		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(e.cfg.RequestDelay):
		}

		if err != nil {
			e.logger.Warn("chunk fetch failed, stopping backfill",
				"symbol", symbol,
				"cursor", cursor.Format("2006-01-02"),
				"error", err,
			)
			break
		}

		// Clip to the requested interval; upstream windows can overshoot.
		filtered := chunk[:0:0]
		for _, rec := range chunk {
			date := rec.Date()
			if !date.Before(floor) && !date.After(gap.End) {
				filtered = append(filtered, rec)
			}
		}
		if len(filtered) == 0 {
			e.logger.Info("chunk had no dates in range, stopping backfill",
				"symbol", symbol,
				"cursor", cursor.Format("2006-01-02"),
			)
			break
		}

		records := make([]model.DayRecord, len(filtered))
		for i, rec := range filtered {
			records[i] = rec.ToDayRecord(symbol)
		}

		inserted, err := e.store.UpsertDayRecords(ctx, symbol, records, today)
		if err != nil {
			return total, err
		}
		total += inserted

		oldest := filtered[0].Date()
		for _, rec := range filtered[1:] {
			if d := rec.Date(); d.Before(oldest) {
				oldest = d
			}
		}

		e.logger.Debug("chunk persisted",
			"symbol", symbol,
			"inserted", inserted,
			"of", len(filtered),
			"oldest", oldest.Format("2006-01-02"),
		)

		// A short chunk usually means the start of available history;
		// reaching the floor means the interval is exhausted.
		if inserted < limit || !oldest.After(floor) {
			break
		}

		cursor = oldest.AddDate(0, 0, -1)
	}

	return total, nil
}
