// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for report retrieval.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the base duration for exponential backoff on throttled
// responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 5 * time.Second

const defaultMaxRetries = 4

// retryable reports whether a status code indicates temporary refusal worth
// retrying. County report servers answer 503 during nightly maintenance and
// 429 under rate limiting.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes a request and retries throttled responses (429, 503)
// with exponential backoff starting at RetryBaseDelay and doubling each
// attempt. Progress lines go to progress when it is non-nil.
//
// When maxRetries is 0 the default (4) is used. The throttled response body
// is drained and closed before each wait. A context cancellation during the
// wait returns ctx.Err(). After exhausting retries the last throttled
// response is returned for the caller to inspect.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, progress io.Writer) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if progress == nil {
		progress = io.Discard
	}

	backoff := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		io.WriteString(progress, "server busy ("+resp.Status+"), retrying in "+backoff.String()+"\n")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
