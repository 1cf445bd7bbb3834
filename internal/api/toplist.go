package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetTopByMarketCap fetches one page of the top-assets-by-market-cap listing.
// Pages are zero-based and returned in upstream rank order. An error
// discriminator or empty page yields ErrNoData.
func (c *Client) GetTopByMarketCap(ctx context.Context, page, limit int) ([]TopCoin, error) {
	query := url.Values{}
	query.Set("tsym", c.quote)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	var resp TopListResponse
	if err := c.get(ctx, "/data/top/mktcapfull", query, &resp); err != nil {
		return nil, fmt.Errorf("get top list page %d: %w", page, err)
	}

	if resp.Response == "Error" {
		return nil, fmt.Errorf("top list page %d: %s: %w", page, resp.Message, ErrNoData)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("top list page %d empty: %w", page, ErrNoData)
	}

	return resp.Data, nil
}
