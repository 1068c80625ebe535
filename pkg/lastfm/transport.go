package lastfm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// call makes a GET request to the Last.fm API with retry logic.
//
// It handles:
// - Request construction with the api key and JSON format
// - Error envelope detection ({"error": N, "message": "..."})
// - Retry with exponential backoff for network errors, 5xx and temporary codes
// - Context cancellation
func (c *Client) call(ctx context.Context, method string, params map[string]string) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		if v != "" {
			query.Set(k, v)
		}
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	endpoint := c.baseURL + "?" + query.Encode()

	var lastErr error
	backoff := 1 * time.Second

	for i := 0; i < c.maxRetries; i++ {
		c.logDebugf("lastfm: calling %s (attempt %d/%d)", method, i+1, c.maxRetries)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "recap/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && i < c.maxRetries-1 {
				c.logDebugf("lastfm: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d %s", resp.StatusCode, resp.Status)
			if i < c.maxRetries-1 {
				c.logDebugf("lastfm: server error, retrying: %v", lastErr)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, lastErr
		}

		// Last.fm reports API errors in a JSON envelope, sometimes with a 4xx status.
		if apiErr := parseError(body); apiErr != nil {
			if apiErr.Temporary() && i < c.maxRetries-1 {
				c.logDebugf("lastfm: temporary error, retrying: %v", apiErr)
				lastErr = apiErr
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, apiErr
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		if !gjson.ValidBytes(body) {
			return nil, &FormatError{Method: method, Path: "", Reason: "invalid JSON"}
		}

		c.logDebugf("lastfm: %s succeeded", method)
		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// parseError extracts an API error from a response body, if present.
func parseError(body []byte) *Error {
	if !gjson.ValidBytes(body) {
		return nil
	}
	code := gjson.GetBytes(body, "error")
	if !code.Exists() || code.Type != gjson.Number {
		return nil
	}
	return &Error{
		Code:    int(code.Int()),
		Message: gjson.GetBytes(body, "message").String(),
	}
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
