// Package ratelimit provides a token-bucket admission policy backed by
// golang.org/x/time/rate, composable into a SafetyNet alongside breakers
// and retries.
package ratelimit

import (
	"context"
	"errors"

	gss "github.com/Keksclan/goSafeSquirrel"
	"golang.org/x/time/rate"
)

// ErrLimited is returned when the token bucket has no capacity for the
// call. The wrapped operation is not invoked.
var ErrLimited = errors.New("ratelimit: request rejected")

// Policy rejects operations that exceed the configured rate. It is safe for
// concurrent use.
type Policy struct {
	lim *rate.Limiter
}

// New creates a Policy that permits rps operations per second with the
// given burst size.
func New(rps float64, burst int) *Policy {
	return &Policy{lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow reports whether a single operation may proceed, consuming a token
// when it does.
func (p *Policy) Allow() bool {
	return p.lim.Allow()
}

// Wrap implements the root package's Policy contract: the operation runs
// only when a token is available, otherwise [ErrLimited] is returned.
func (p *Policy) Wrap(next gss.Operation) gss.Operation {
	return func(ctx context.Context) (any, error) {
		if !p.lim.Allow() {
			return nil, ErrLimited
		}
		return next(ctx)
	}
}
