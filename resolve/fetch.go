package resolve

import (
	"context"
	"time"

	"github.com/jonwraymond/resolvecache/resilience"
)

// WithRetry wraps a fetch so transient backing-source failures are retried
// per the retry policy. The resolver itself never retries; callers opt in by
// decorating the fetch they pass.
func WithRetry[T any](fetch FetchFunc[T], retry *resilience.Retry) FetchFunc[T] {
	return func(ctx context.Context) ([]T, error) {
		var items []T
		err := retry.Execute(ctx, func(ctx context.Context) error {
			var err error
			items, err = fetch(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	}
}

// WithTimeout wraps a fetch with a per-call timeout. A fetch that exceeds it
// fails with resilience.ErrTimeout.
func WithTimeout[T any](fetch FetchFunc[T], timeout time.Duration) FetchFunc[T] {
	return func(ctx context.Context) ([]T, error) {
		var items []T
		err := resilience.ExecuteWithTimeout(ctx, timeout, func(ctx context.Context) error {
			var err error
			items, err = fetch(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	}
}
