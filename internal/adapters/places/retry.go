package places

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	defaultMaxRetries  = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

// doRequestWithRetry retries transient failures (network errors, 429, 5xx)
// with exponential backoff. Non-retryable responses are returned as-is.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	maxRetries := c.maxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	baseBackoff := c.baseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBaseBackoff
	}

	ctx := req.Context()
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("places adapter: request canceled: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if !retryable(resp, err) {
			return resp, err
		}

		attemptNum := attempt + 1
		if err != nil {
			log.Printf("WARN places adapter: retry attempt %d/%d after error: %v", attemptNum, maxRetries, err)
		} else {
			log.Printf("WARN places adapter: retry attempt %d/%d after status %d", attemptNum, maxRetries, resp.StatusCode)
			_ = resp.Body.Close()
		}

		if attempt == maxRetries-1 {
			if err != nil {
				return nil, fmt.Errorf("places adapter: request failed after %d attempts: %w", maxRetries, err)
			}
			return nil, fmt.Errorf("places adapter: request failed after %d attempts: status %d", maxRetries, resp.StatusCode)
		}

		if err := sleepWithContext(ctx, baseBackoff*time.Duration(1<<attempt)); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("places adapter: request failed after %d attempts", maxRetries)
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("places adapter: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
