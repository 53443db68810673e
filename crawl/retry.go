package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/folioworks/folio"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetry calls op until it succeeds, waiting delays[i] before retry
// i+1, so there are len(delays)+1 attempts in total. Errors coded
// EINVALID or ENOTFOUND are permanent and returned without retrying. onRetry, if not
// nil, is called before each wait with the upcoming attempt number.
func WithRetry[T any](ctx context.Context, delays []time.Duration, op func(context.Context) (T, error), onRetry func(attempt int, err error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= len(delays); attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *folio.Error
	return !errors.As(err, &e) || (e.Code != folio.EINVALID && e.Code != folio.ENOTFOUND)
}

// FetchWithRetry fetches url with the default backoff of 1s, 2s, 4s.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var onRetry func(int, error)
	if logger != nil {
		onRetry = func(attempt int, err error) {
			logger("  retry %s (attempt %d): %v", url, attempt, err)
		}
	}
	return WithRetry(ctx, delays, func(ctx context.Context) (string, error) {
		return fetch(ctx, url)
	}, onRetry)
}
