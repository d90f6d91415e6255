// Package backoff computes retry delays. [Exponential] grows the delay by a
// constant factor per attempt with optional jitter; [Fixed] is the
// degenerate case with a constant delay.
package backoff

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrInvalidAttempt is returned by ForAttempt for attempt numbers below 1.
var ErrInvalidAttempt = errors.New("backoff: attempt must be positive")

// Strategy computes the delay before a given retry attempt. Attempt numbers
// start at 1 for the first retry.
type Strategy interface {
	ForAttempt(attempt int) (time.Duration, error)
}

// Exponential computes min*factor^(attempt-1), applies optional jitter, and
// caps the result at max.
type Exponential struct {
	min    time.Duration
	max    time.Duration
	factor float64
	jitter float64        // 0 disables jitter
	randFn func() float64 // for testing; defaults to rand.Float64
}

// Option configures an Exponential strategy.
type Option func(*Exponential)

// WithJitter adds a uniformly random offset of ±(delay*fraction) to each
// computed delay before capping. The fraction must be in [0, 1].
func WithJitter(fraction float64) Option {
	return func(e *Exponential) {
		e.jitter = fraction
	}
}

// NewExponential creates an exponential backoff strategy. The growth factor
// must be at least 1; a jitter fraction outside [0, 1] fails construction.
func NewExponential(min, max time.Duration, factor float64, opts ...Option) (*Exponential, error) {
	if min < 0 {
		return nil, fmt.Errorf("backoff: min delay must be non-negative, got %v", min)
	}
	if max < min {
		return nil, fmt.Errorf("backoff: max delay %v is below min delay %v", max, min)
	}
	if factor < 1 {
		return nil, fmt.Errorf("backoff: factor must be at least 1, got %v", factor)
	}

	e := &Exponential{min: min, max: max, factor: factor}
	for _, o := range opts {
		o(e)
	}

	if e.jitter < 0 || e.jitter > 1 {
		return nil, fmt.Errorf("backoff: jitter must be in [0, 1], got %v", e.jitter)
	}
	return e, nil
}

// Fixed returns a strategy with a constant delay regardless of attempt.
func Fixed(delay time.Duration) *Exponential {
	return &Exponential{min: delay, max: delay, factor: 1}
}

// ForAttempt returns the delay before the given retry attempt. Attempt
// numbers below 1 return ErrInvalidAttempt.
func (e *Exponential) ForAttempt(attempt int) (time.Duration, error) {
	if attempt < 1 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidAttempt, attempt)
	}

	delay := float64(e.min) * math.Pow(e.factor, float64(attempt-1))

	if e.jitter > 0 {
		offset := delay * e.jitter
		// offset scaled into ±offset.
		delay += offset * (e.rand()*2 - 1)
	}

	if maxDelay := float64(e.max); delay > maxDelay {
		delay = maxDelay
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay), nil
}

func (e *Exponential) rand() float64 {
	if e.randFn != nil {
		return e.randFn()
	}
	return rand.Float64()
}
