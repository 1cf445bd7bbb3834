// Package discovery builds the tracked asset set: it pages through the
// upstream top-by-market-cap listing, filters out junk symbols, and probes
// each candidate's recent history to drop dead or delisted feeds.
package discovery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dmarkoski/coinsync/internal/api"
	"github.com/dmarkoski/coinsync/internal/model"
)

// sentinelSymbol is a placeholder code the upstream listing is known to emit.
const sentinelSymbol = "00"

// Config holds discovery settings.
type Config struct {
	PageSize   int           // Listing page size (upstream max 100)
	MaxPages   int           // Hard cap on pages scanned
	PageDelay  time.Duration // Delay between listing pages
	ProbeDelay time.Duration // Delay between liveness probes
}

// Discoverer finds candidate symbols and tests them for liveness.
type Discoverer struct {
	cfg    Config
	client *api.Client
	logger *slog.Logger
}

// New creates a Discoverer.
func New(cfg Config, client *api.Client, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{cfg: cfg, client: client, logger: logger}
}

// DiscoverCandidates pages through the listing until maxCoins raw entries are
// accumulated, the page cap is hit, or a page comes back empty or failed.
// Returned candidates pass the acceptance filter and keep upstream rank order;
// duplicate symbols across pages are dropped defensively.
func (d *Discoverer) DiscoverCandidates(ctx context.Context, maxCoins int) ([]model.Coin, error) {
	var raw []api.TopCoin

	for page := 0; page < d.cfg.MaxPages && len(raw) < maxCoins; page++ {
		coins, err := d.client.GetTopByMarketCap(ctx, page, d.cfg.PageSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.logger.Warn("listing page failed, stopping discovery",
				"page", page,
				"error", err,
			)
			break
		}

		raw = append(raw, coins...)
		d.logger.Info("loaded listing page",
			"page", page,
			"coins", len(coins),
			"total", len(raw),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.cfg.PageDelay):
		}
	}

	candidates := make([]model.Coin, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, c := range raw {
		symbol := strings.ToUpper(strings.TrimSpace(c.CoinInfo.Name))
		if !acceptSymbol(symbol, c.CoinInfo.FullName) {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		candidates = append(candidates, model.Coin{
			Symbol:   symbol,
			FullName: c.CoinInfo.FullName,
		})
	}

	d.logger.Info("discovery complete",
		"raw", len(raw),
		"candidates", len(candidates),
	)
	return candidates, nil
}

// acceptSymbol applies the candidate acceptance filter: at least two
// characters, strictly alphanumeric, not a known placeholder, and a
// display name present.
func acceptSymbol(symbol, fullName string) bool {
	if len(symbol) < 2 {
		return false
	}
	if symbol == sentinelSymbol {
		return false
	}
	if fullName == "" {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
