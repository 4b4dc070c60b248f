package batch

import (
	"context"
	"time"

	"github.com/jswierad/distill"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL with the default backoff schedule. The
// logger function, if provided, is called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but with a configurable
// backoff schedule; one retry is attempted per delay. Only errors that
// could plausibly resolve on a repeat attempt are retried. This is
// useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}

		if !retryable(err) || attempt >= len(delays) {
			return "", err
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}

// retryable reports whether a fetch error is worth repeating. A malformed
// request or a definitive empty answer will not change on retry; outages
// and unclassified errors might.
func retryable(err error) bool {
	switch distill.ErrorCode(err) {
	case distill.EINVALID, distill.ENOTFOUND, distill.ENOCONTENT, distill.ECONFLICT:
		return false
	}
	return true
}
