package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrExhausted is returned by Do when every attempt ran without reaching a terminal state.
var ErrExhausted = errors.New("retry: attempts exhausted")

// errPending marks a non-terminal attempt so backoff schedules another one.
var errPending = errors.New("retry: result not terminal")

// Policy is a bounded retry policy with a fixed delay between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// backOff is a constant, jitter-free schedule allowing MaxAttempts tries in total.
func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1))
	return backoff.WithContext(b, ctx)
}

// Attempt performs one try. done reports whether the result is terminal.
// A non-nil error stops the loop immediately.
type Attempt[T any] func(ctx context.Context, attempt int) (result T, done bool, err error)

// Do runs fn until it reports a terminal result, returns an error, or the policy runs
// out of attempts. The delay is only applied between attempts, never after the last one.
// On exhaustion the last non-terminal result is returned with ErrExhausted.
func Do[T any](ctx context.Context, p Policy, fn Attempt[T]) (T, error) {
	attempt := 0
	result, err := backoff.RetryWithData(func() (T, error) {
		attempt++
		result, done, err := fn(ctx, attempt)
		switch {
		case err != nil:
			return result, backoff.Permanent(err)
		case !done:
			return result, errPending
		}
		return result, nil
	}, p.backOff(ctx))

	if errors.Is(err, errPending) {
		return result, ErrExhausted
	}
	return result, err
}
