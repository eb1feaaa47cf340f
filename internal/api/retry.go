package api

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	retryMaxAttempts = 3
	retryBaseDelay   = 250 * time.Millisecond
	retryMaxDelay    = 2 * time.Second
)

// doWithRetry executes idempotent requests, retrying transient statuses
// with exponential backoff and jitter. makeReq builds a fresh request per
// attempt so the body is never re-read. Only GETs go through here; writes
// are one-shot because the backend records them.
func doWithRetry(ctx context.Context, client *http.Client, makeReq func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= retryMaxAttempts; attempt++ {
		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
		} else {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = apiError(resp.StatusCode, body)

			if !retryableStatus(resp.StatusCode) {
				return nil, lastErr
			}
		}

		if attempt == retryMaxAttempts {
			break
		}
		if err := sleepWithBackoff(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepWithBackoff(ctx context.Context, attempt int) error {
	delay := retryBaseDelay * time.Duration(1<<attempt)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	delay += time.Duration(rand.Int64N(int64(delay/2) + 1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
