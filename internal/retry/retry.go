// Package retry implements the fixed exponential backoff policy applied
// around a gateway's ProcessPayment call, per spec.md §4.3.
package retry

import (
	"context"
	"time"
)

// Policy retries an operation up to MaxAttempts times after the initial
// attempt, sleeping BaseDelay * 2^n before the nth retry (n starting at 1).
// It is stateless and safe to reuse across calls.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Default is 3 retries after the initial attempt (4 invocations total),
// with a 1 second base delay, per spec.md §4.3.
func Default() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 1 * time.Second}
}

// Retryable reports whether an outcome should be retried. Implemented by
// model.PaymentResult-derived callers that know their own retryability.
type Retryable interface {
	ShouldRetry() bool
}

// Do invokes op up to p.MaxAttempts+1 times total, stopping as soon as op
// returns a non-retryable result, or once ctx is cancelled while waiting
// between attempts. Any returned error is retryable at this layer exactly
// like a retryable result; only the final attempt's error, if any,
// propagates to the caller. The backoff before the nth retry (n starting
// at 1) is p.BaseDelay * 2^n.
func Do[T Retryable](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= p.MaxAttempts; attempt++ {
		result, err = op(ctx)
		if err == nil && !result.ShouldRetry() {
			return result, nil
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.BaseDelay * time.Duration(1<<uint(attempt+1))
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	return result, err
}
