// Package resilience provides retry and timeout wrappers for remote fetches.
//
// Fetches that fill the resolver cache talk to a remote API that rate
// limits and occasionally fails transiently. The package provides:
//
//   - Retry: automatically retries failed operations with configurable
//     backoff strategies (exponential, linear, constant). A RetryAfter
//     hook lets callers surface a server-provided delay hint, which takes
//     precedence over the computed backoff.
//
//   - Timeout: ensures operations complete within a time limit.
//
// Each wrapper can be used independently or composed:
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 100 * time.Millisecond,
//	    MaxDelay:     5 * time.Second,
//	    Multiplier:   2.0,
//	})
//
//	err := retry.Execute(ctx, func(ctx context.Context) error {
//	    return resilience.ExecuteWithTimeout(ctx, 5*time.Second, fetchPipelines)
//	})
package resilience
