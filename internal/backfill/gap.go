// Package backfill detects missing date intervals per symbol and fills them
// by walking the upstream daily-history endpoint backward in bounded chunks.
package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
	"github.com/dmarkoski/coinsync/internal/store"
)

// Detector computes the missing date interval for a symbol from stored state.
type Detector struct {
	store     store.Store
	startDate time.Time // lower bound for full-history backfills
}

// NewDetector creates a gap detector. startDate is the beginning of history
// for symbols with no stored rows.
func NewDetector(st store.Store, startDate time.Time) *Detector {
	return &Detector{store: st, startDate: model.DateUTC(startDate)}
}

// ComputeGap returns the interval of days missing for symbol, ending at
// yesterday. ok is false when the symbol is already up to date. yesterday is
// computed once per run by the caller so the interval stays stable even when
// the run crosses a UTC day boundary.
func (d *Detector) ComputeGap(ctx context.Context, symbol string, yesterday time.Time) (model.Gap, bool, error) {
	last, found, err := d.store.LatestHistoricalDate(ctx, symbol)
	if err != nil {
		return model.Gap{}, false, fmt.Errorf("compute gap %s: %w", symbol, err)
	}

	if !found {
		return model.Gap{Start: d.startDate, End: yesterday}, true, nil
	}
	if !last.Before(yesterday) {
		return model.Gap{}, false, nil
	}
	return model.Gap{Start: last.AddDate(0, 0, 1), End: yesterday}, true, nil
}
