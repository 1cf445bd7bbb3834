package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetFullQuote fetches the current-state quote for symbol in the configured
// quote currency. A payload missing the RAW entry for the pair (including
// upstream error payloads, which omit RAW entirely) yields ErrNoData.
func (c *Client) GetFullQuote(ctx context.Context, symbol string) (*RawQuote, error) {
	query := url.Values{}
	query.Set("fsyms", symbol)
	query.Set("tsyms", c.quote)

	var resp PriceMultiFullResponse
	if err := c.get(ctx, "/data/pricemultifull", query, &resp); err != nil {
		return nil, fmt.Errorf("get full quote %s: %w", symbol, err)
	}

	if resp.Response == "Error" {
		return nil, fmt.Errorf("full quote %s: %s: %w", symbol, resp.Message, ErrNoData)
	}

	bySymbol, ok := resp.Raw[symbol]
	if !ok {
		return nil, fmt.Errorf("full quote %s: no RAW entry: %w", symbol, ErrNoData)
	}
	quote, ok := bySymbol[c.quote]
	if !ok {
		return nil, fmt.Errorf("full quote %s: no %s quote: %w", symbol, c.quote, ErrNoData)
	}

	return &quote, nil
}
