// Package retry provides the pipeline policy that retries a send with
// exponential backoff and jitter, delegating the retry/no-retry decision to
// a pluggable Decider (spec.md §4.E). No retry implementation exists in the
// teacher (its RPC transports fail fast), so the backoff math follows the
// general shape of client/middleware/circuitbreaker's cool-off timer
// (time.Duration arithmetic) and weightedrouting's math/rand-based jitter,
// rewritten against policy.Policy and a Config modeled on the
// circuit-breaker middleware's Static/DynamicConfig split.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

// Decider decides whether attempt (1-based) should be retried given the
// outcome of a send. Exactly one of res/err is non-nil/non-zero.
type Decider interface {
	ShouldRetry(ctx context.Context, attempt int, res *message.Response, err error) bool
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, attempt int, res *message.Response, err error) bool

// ShouldRetry calls f(ctx, attempt, res, err).
func (f DeciderFunc) ShouldRetry(ctx context.Context, attempt int, res *message.Response, err error) bool {
	return f(ctx, attempt, res, err)
}

// DefaultDecider retries transport failures (excluding cancellation, which
// per spec.md §7 must never be retried) and the three HTTP statuses
// conventionally understood as transient: 502, 503, 504.
var DefaultDecider Decider = DeciderFunc(func(_ context.Context, _ int, res *message.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if res == nil {
		return false
	}
	switch res.Status {
	case 502, 503, 504:
		return true
	default:
		return false
	}
})

// Factory returns a policy.Factory that retries a failed send per cfg's
// bounds and decider.
func Factory(cfg Config) policy.Factory {
	maxAttempts := cfg.GetMaxAttempts()
	if !maxAttempts.HasValue() || maxAttempts.Get() == 0 {
		maxAttempts.Set(DefaultMaxAttempts)
	}
	baseDelay := cfg.GetBaseDelay()
	if baseDelay.Get() == 0 {
		baseDelay.Set(DefaultBaseDelay.Nanoseconds())
	}
	maxDelay := cfg.GetMaxDelay()
	if maxDelay.Get() == 0 {
		maxDelay.Set(DefaultMaxDelay.Nanoseconds())
	}
	jitterFraction := cfg.GetJitterFraction()
	if jitterFraction.Get() == 0 {
		jitterFraction.Set(DefaultJitterFraction)
	}
	decider := cfg.GetDecider()
	if decider == nil {
		decider = DefaultDecider
	}

	return func(next policy.Policy) policy.Policy {
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			var res *message.Response
			var err error

			attempts := int(maxAttempts.Get())
			if attempts < 1 {
				attempts = 1
			}

			for attempt := 1; attempt <= attempts; attempt++ {
				res, err = next.Send(ctx, req)
				if !decider.ShouldRetry(ctx, attempt, res, err) {
					return res, err
				}
				if attempt == attempts {
					return res, err
				}

				delay := backoffDelay(attempt, time.Duration(baseDelay.Get()), time.Duration(maxDelay.Get()), jitterFraction.Get())
				select {
				case <-ctx.Done():
					return res, ctx.Err()
				case <-time.After(delay):
				}
			}

			return res, err
		})
	}
}

// backoffDelay computes base*2^(attempt-1), capped at max, then randomizes
// it by +/- jitterFraction.
func backoffDelay(attempt int, base, max time.Duration, jitterFraction float32) time.Duration {
	delay := base << uint(attempt-1)
	if delay > max || delay <= 0 {
		delay = max
	}

	if jitterFraction <= 0 {
		return delay
	}

	spread := float64(delay) * float64(jitterFraction)
	offset := (rand.Float64()*2 - 1) * spread
	jittered := float64(delay) + offset
	if jittered < 0 {
		jittered = 0
	}
	return time.Duration(jittered)
}
