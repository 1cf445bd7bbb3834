// Package pipeline orchestrates a full ingestion run: schema bootstrap,
// tracked-set load or discovery, then per-symbol gap detection, backfill and
// snapshot capture.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/backfill"
	"github.com/dmarkoski/coinsync/internal/config"
	"github.com/dmarkoski/coinsync/internal/discovery"
	"github.com/dmarkoski/coinsync/internal/model"
	"github.com/dmarkoski/coinsync/internal/snapshot"
	"github.com/dmarkoski/coinsync/internal/store"
)

// Summary aggregates the outcome of one run.
type Summary struct {
	RunID        string
	Symbols      int // tracked symbols the run attempted
	Processed    int // symbols that completed without error
	Failed       int // symbols that errored (isolated, run continued)
	RowsInserted int // historical rows persisted
	Snapshots    int // snapshot rows written
	Duration     time.Duration
}

// Pipeline wires the discovery, backfill and snapshot stages over one store
// and one rotating API client.
type Pipeline struct {
	cfg    *config.Config
	store  store.Store
	disc   *discovery.Discoverer
	gaps   *backfill.Detector
	engine *backfill.Engine
	snaps  *snapshot.Capturer
	logger *slog.Logger
}

// New builds a Pipeline from validated config. The client's key rotation is
// shared by every stage, so rate-limit pressure spreads across credentials
// no matter which stage issues the request.
func New(cfg *config.Config, client *api.Client, st store.Store, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	startDate, err := cfg.StartDateTime()
	if err != nil {
		return nil, fmt.Errorf("backfill start date: %w", err)
	}

	return &Pipeline{
		cfg:   cfg,
		store: st,
		disc: discovery.New(discovery.Config{
			PageSize:   cfg.Discovery.PageSize,
			MaxPages:   cfg.Discovery.MaxPages,
			PageDelay:  cfg.Discovery.PageDelay,
			ProbeDelay: cfg.Discovery.ProbeDelay,
		}, client, logger),
		gaps: backfill.NewDetector(st, startDate),
		engine: backfill.NewEngine(backfill.Config{
			ChunkDays:    cfg.Backfill.ChunkDays,
			RequestDelay: cfg.Backfill.RequestDelay,
		}, client, st, logger),
		snaps:  snapshot.NewCapturer(client, st, logger),
		logger: logger,
	}, nil
}

// Run executes one full ingestion pass. Cancelling ctx stops new work; the
// chunk or quote in flight finishes or times out on its own. Partial progress
// is never rolled back; every write is idempotent and the next run's gap
// detection self-heals any shortfall.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	if err := p.store.EnsureSchema(ctx); err != nil {
		return Summary{RunID: runID}, err
	}

	symbols, err := p.trackedSymbols(ctx, logger)
	if err != nil {
		return Summary{RunID: runID}, err
	}

	// Pinned once so gap intervals and the today-filter stay stable even
	// when the run crosses a UTC day boundary.
	now := time.Now()
	today := model.DateUTC(now)
	yesterday := model.Yesterday(now)

	logger.Info("processing symbols",
		"symbols", len(symbols),
		"yesterday", yesterday.Format("2006-01-02"),
		"concurrency", p.cfg.Pipeline.Concurrency,
	)

	var processed, failed, rows, snaps atomic.Int64

	work := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < p.cfg.Pipeline.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range work {
				inserted, snapped, err := p.processSymbol(ctx, sym, today, yesterday)
				rows.Add(int64(inserted))
				if snapped {
					snaps.Add(1)
				}
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Warn("symbol failed",
						"symbol", sym,
						"error", err,
					)
					failed.Add(1)
				} else {
					processed.Add(1)
				}

				// Inter-symbol delay per worker stream, not globally.
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.cfg.Pipeline.SymbolDelay):
				}
			}
		}()
	}

feed:
	for _, sym := range symbols {
		select {
		case <-ctx.Done():
			break feed
		case work <- sym:
		}
	}
	close(work)
	wg.Wait()

	summary := Summary{
		RunID:        runID,
		Symbols:      len(symbols),
		Processed:    int(processed.Load()),
		Failed:       int(failed.Load()),
		RowsInserted: int(rows.Load()),
		Snapshots:    int(snaps.Load()),
		Duration:     time.Since(start),
	}

	logger.Info("run complete",
		"symbols", summary.Symbols,
		"processed", summary.Processed,
		"failed", summary.Failed,
		"rows_inserted", summary.RowsInserted,
		"snapshots", summary.Snapshots,
		"duration", summary.Duration,
	)

	if ctx.Err() != nil {
		return summary, ctx.Err()
	}
	return summary, nil
}

// trackedSymbols loads the tracked set, running discovery and the liveness
// selection once when the store is empty.
func (p *Pipeline) trackedSymbols(ctx context.Context, logger *slog.Logger) ([]string, error) {
	symbols, err := p.store.ListTrackedSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) > 0 {
		logger.Info("using tracked symbols from store", "symbols", len(symbols))
		return symbols, nil
	}

	logger.Info("no tracked symbols, running discovery")

	target := p.cfg.Discovery.TargetSymbols
	// Extra headroom over the target covers candidates that fail the
	// liveness probe.
	maxCoins := target + target/2

	candidates, err := p.disc.DiscoverCandidates(ctx, maxCoins)
	if err != nil {
		return nil, fmt.Errorf("discover candidates: %w", err)
	}

	live, err := p.disc.SelectLive(ctx, candidates, target)
	if err != nil {
		return nil, fmt.Errorf("select live symbols: %w", err)
	}

	if err := p.store.UpsertCoins(ctx, live); err != nil {
		return nil, fmt.Errorf("persist tracked symbols: %w", err)
	}

	symbols = make([]string, len(live))
	for i, c := range live {
		symbols[i] = c.Symbol
	}
	logger.Info("tracked set persisted", "symbols", len(symbols))
	return symbols, nil
}

// processSymbol runs gap detection, backfill and snapshot capture for one
// symbol. Errors here are isolated at the caller's boundary.
func (p *Pipeline) processSymbol(ctx context.Context, symbol string, today, yesterday time.Time) (rows int, snapped bool, err error) {
	gap, hasGap, err := p.gaps.ComputeGap(ctx, symbol, yesterday)
	if err != nil {
		return 0, false, err
	}

	if hasGap {
		p.logger.Info("backfilling",
			"symbol", symbol,
			"from", gap.Start.Format("2006-01-02"),
			"to", gap.End.Format("2006-01-02"),
			"days", gap.Days(),
		)
		rows, err = p.engine.Backfill(ctx, symbol, gap, today)
		if err != nil {
			return rows, false, err
		}
	}

	snapped, err = p.snaps.Capture(ctx, symbol, today)
	return rows, snapped, err
}
