package discovery

import (
	"context"
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
)

// IsLive probes the two most recent daily candles for symbol and reports
// whether at least one carries a positive close or high. Feeds that return
// only zero-filled records belong to delisted or inactive assets.
func (d *Discoverer) IsLive(ctx context.Context, symbol string) bool {
	records, err := d.client.GetDailyHistory(ctx, symbol, 0, 2)
	if err != nil {
		return false
	}
	for _, r := range records {
		if r.Close > 0 || r.High > 0 {
			return true
		}
	}
	return false
}

// SelectLive walks candidates in order, probing one at a time, and returns the
// first target symbols that pass the liveness check. This is an early-exit
// selection: once target symbols are accepted the remaining candidates are
// never probed, so upstream rank order decides which live symbols win.
func (d *Discoverer) SelectLive(ctx context.Context, candidates []model.Coin, target int) ([]model.Coin, error) {
	live := make([]model.Coin, 0, target)

	for _, c := range candidates {
		if ctx.Err() != nil {
			return live, ctx.Err()
		}

		if d.IsLive(ctx, c.Symbol) {
			live = append(live, c)
		}
		if len(live) == target {
			break
		}

		select {
		case <-ctx.Done():
			return live, ctx.Err()
		case <-time.After(d.cfg.ProbeDelay):
		}
	}

	d.logger.Info("liveness selection complete",
		"candidates", len(candidates),
		"accepted", len(live),
		"target", target,
	)
	return live, nil
}
