package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetDailyHistory fetches up to limit daily candles for symbol, ending at the
// UTC timestamp toTs (inclusive) and walking backward. toTs <= 0 means "now".
// Records come back oldest first. A response without the Success discriminator
// yields ErrNoData.
func (c *Client) GetDailyHistory(ctx context.Context, symbol string, toTs int64, limit int) ([]HistoDayRecord, error) {
	query := url.Values{}
	query.Set("fsym", symbol)
	query.Set("tsym", c.quote)
	query.Set("limit", strconv.Itoa(limit))
	if toTs > 0 {
		query.Set("toTs", strconv.FormatInt(toTs, 10))
	}

	var resp HistoDayResponse
	if err := c.get(ctx, "/data/v2/histoday", query, &resp); err != nil {
		return nil, fmt.Errorf("get daily history %s: %w", symbol, err)
	}

	if resp.Response != "Success" {
		return nil, fmt.Errorf("daily history %s: %s: %w", symbol, resp.Message, ErrNoData)
	}

	return resp.Data.Data, nil
}
