package usecase

import (
	"context"
	"time"

	"github.com/compozy/autotag/internal/repository"
	"github.com/sethvargo/go-retry"
)

// callWithRetry runs fn, retrying transient GitHub failures with exponential
// backoff starting at delay. Callers pass the delay; a non-positive delay
// retries without waiting.
func callWithRetry[T any](
	ctx context.Context,
	maxRetries uint64,
	delay time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var backoff retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
	if delay > 0 {
		backoff = retry.NewExponential(delay)
	}
	return retry.DoValue(ctx, retry.WithMaxRetries(maxRetries, backoff), func(retryCtx context.Context) (T, error) {
		v, err := fn(retryCtx)
		if err != nil && repository.IsTransient(err) {
			return v, retry.RetryableError(err)
		}
		return v, err
	})
}
