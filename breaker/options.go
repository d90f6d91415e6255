package breaker

import (
	"go.uber.org/zap"

	"github.com/Keksclan/goSafeSquirrel/store"
)

// Classifier decides whether an error counts as a tracked failure. Errors it
// rejects are recorded as successes and never trip the circuit.
type Classifier func(error) bool

// StateChangeFunc observes state transitions. It is invoked synchronously
// after the state has been swapped; panics are not recovered and propagate
// to the caller of the guarded operation.
type StateChangeFunc func(b *Breaker, from, to State)

// Option configures a Breaker.
type Option func(*Breaker)

// WithClassifier sets the failure classifier. The default counts every
// error as a failure.
func WithClassifier(c Classifier) Option {
	return func(b *Breaker) {
		if c != nil {
			b.classify = c
		}
	}
}

// WithOnStateChange registers a state-change observer.
func WithOnStateChange(fn StateChangeFunc) Option {
	return func(b *Breaker) {
		b.onChange = fn
	}
}

// WithStore shares the breaker's state across processes under resourceKey.
// The store seeds the breaker at construction and receives a snapshot after
// every transition and every guarded execution. Store failures are logged
// and the breaker carries on with its in-memory state.
func WithStore(s store.Store, resourceKey string) Option {
	return func(b *Breaker) {
		b.st = s
		b.key = resourceKey
	}
}

// WithLogger sets the logger used to report store failures. Passing nil
// keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Breaker) {
		if logger != nil {
			b.log = logger.Named("breaker")
		}
	}
}
