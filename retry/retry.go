// Package retry provides a bounded retry policy with pluggable backoff. It
// implements the root package's Policy contract so it can be composed into
// a SafetyNet, or used standalone via [Policy.Execute].
package retry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	gss "github.com/Keksclan/goSafeSquirrel"
	"github.com/Keksclan/goSafeSquirrel/backoff"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrRetriesExceeded is returned after all attempts are exhausted. The
// returned error also wraps the last underlying error, so errors.Is works
// against both.
var ErrRetriesExceeded = errors.New("retry: retries exceeded")

// Classifier decides whether an error counts as a retryable failure. Errors
// it rejects propagate immediately without consuming a retry.
type Classifier func(error) bool

// OnCodes returns a Classifier that retries only errors carrying one of the
// given gRPC status codes.
func OnCodes(retryable ...codes.Code) Classifier {
	return func(err error) bool {
		st, ok := status.FromError(err)
		return ok && slices.Contains(retryable, st.Code())
	}
}

// Policy retries an operation on classified failures, sleeping between
// attempts according to a backoff strategy. A Policy carries no per-call
// state and is safe to reuse across operations.
type Policy struct {
	maxAttempts int
	strategy    backoff.Strategy
	classify    Classifier
}

// Option configures a Policy.
type Option func(*Policy)

// WithBackoff sets the delay strategy applied between attempts. Without a
// strategy retries happen immediately.
func WithBackoff(s backoff.Strategy) Option {
	return func(p *Policy) {
		p.strategy = s
	}
}

// WithClassifier sets the failure classifier. The default treats every
// error as retryable.
func WithClassifier(c Classifier) Option {
	return func(p *Policy) {
		p.classify = c
	}
}

// New creates a retry policy allowing maxRetries additional attempts after
// the first, so the operation runs at most maxRetries+1 times.
func New(maxRetries int, opts ...Option) (*Policy, error) {
	if maxRetries < 0 {
		return nil, fmt.Errorf("retry: max retries must be non-negative, got %d", maxRetries)
	}

	p := &Policy{
		maxAttempts: maxRetries + 1,
		classify:    func(error) bool { return true },
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Wrap implements the root package's Policy contract.
//
// The wrapped operation runs until it succeeds, a non-retryable error
// occurs, the context is cancelled during a backoff sleep, or all attempts
// are exhausted. Retry number n sleeps for strategy.ForAttempt(n) before
// re-invoking; no sleep follows the final attempt.
func (p *Policy) Wrap(next gss.Operation) gss.Operation {
	return func(ctx context.Context) (any, error) {
		var last error

		for attempt := 1; attempt <= p.maxAttempts; attempt++ {
			res, err := next(ctx)
			if err == nil {
				return res, nil
			}
			if !p.classify(err) {
				return nil, err
			}
			last = err

			if attempt == p.maxAttempts {
				break
			}
			if p.strategy != nil {
				delay, derr := p.strategy.ForAttempt(attempt)
				if derr != nil {
					return nil, derr
				}
				if serr := sleep(ctx, delay); serr != nil {
					return nil, serr
				}
			}
		}

		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExceeded, p.maxAttempts, last)
	}
}

// Execute runs op under the retry policy.
func (p *Policy) Execute(ctx context.Context, op gss.Operation) (any, error) {
	return p.Wrap(op)(ctx)
}

// sleep blocks for the given duration, returning early with the context
// error when ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
