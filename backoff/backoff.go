package backoff

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultMaxDelay caps the wait between attempts.
const DefaultMaxDelay = 10 * time.Second

// Policy bounds how a single operation is retried. An operation is attempted
// at most MaxAttempts times, with an exponential wait starting at BaseDelay
// and capped at MaxDelay between attempts. Only errors the Retryable
// predicate accepts are retried; everything else surfaces immediately.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Retryable   func(error) bool
}

func NewPolicy(maxAttempts int, baseDelay time.Duration, maxDelay time.Duration, retryable func(error) bool) *Policy {
	return &Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		Retryable:   retryable,
	}
}

func (policy *Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	base := policy.BaseDelay
	if base <= 0 {
		base = time.Second
	}

	var b retry.Backoff = retry.NewExponential(base)
	if policy.MaxDelay > 0 {
		b = retry.WithCappedDuration(policy.MaxDelay, b)
	}
	b = retry.WithMaxRetries(uint64(attempts-1), b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if policy.Retryable == nil || policy.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
