package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoData marks calls that completed but produced nothing usable: an error
// discriminator in the payload, an empty page, or a malformed quote. Callers
// stop or skip on it rather than aborting the run.
var ErrNoData = errors.New("no usable data")

// APIError represents an HTTP-level error from the upstream API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream api error %d: %s", e.StatusCode, e.Message)
}

// doRequest performs a single GET attempt, consuming one key from the rotation.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if key := c.rotator.Next(); key != "" {
		req.Header.Set("Authorization", "Apikey "+key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// get performs a GET with retries and decodes the JSON response into result.
// Network errors, non-2xx statuses and undecodable bodies all count as
// transient: each burns one attempt and waits the fixed retry delay, and each
// retry runs under a fresh key from the rotation.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"delay", c.retryDelay,
				"path", path,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		body, err := c.doRequest(ctx, path, query)
		if err == nil {
			if err = json.Unmarshal(body, result); err == nil {
				return nil
			}
			err = fmt.Errorf("unmarshal response: %w", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
