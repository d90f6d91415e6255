// Package gosafesquirrel composes resilience policies (circuit breaking,
// retry with backoff, rate limiting) around a single fallible operation.
//
// The building blocks live in subpackages (breaker, retry, backoff, store,
// ratelimit, tracing); this package defines the [Operation] and [Policy]
// contracts they implement and the [SafetyNet] that chains them:
//
//	net, _ := gss.NewSafetyNet(retryPolicy, breakerPolicy)
//	result, err := gss.Execute(ctx, net, fetchUser)
//
// The first policy passed to [NewSafetyNet] becomes the outermost wrapper:
// it runs first and observes the errors produced by everything inside it.
package gosafesquirrel

import (
	"context"
	"errors"
	"slices"
)

// Operation is a single fallible call guarded by policies. Policies pass the
// context through unchanged unless they need to derive from it (tracing).
type Operation func(ctx context.Context) (any, error)

// Policy wraps an Operation with additional behaviour (retrying, circuit
// breaking, rate limiting). Wrap must not invoke next itself; it returns a
// new Operation that does so when called.
type Policy interface {
	Wrap(next Operation) Operation
}

// ErrDuplicatePolicy is returned by NewSafetyNet when the same policy
// instance appears more than once in the list.
var ErrDuplicatePolicy = errors.New("safetynet: duplicate policy")

// SafetyNet is an ordered, immutable chain of policies. Policies are applied
// in reverse order, so the first policy in the list is the outermost wrapper
// and sees the results of all inner policies, including their converted
// errors (for example a retry policy wrapping a breaker observes the
// breaker's open-circuit rejections).
type SafetyNet struct {
	policies []Policy
}

// NewSafetyNet creates a SafetyNet from the given policies. The same policy
// instance may appear at most once; duplicates fail construction with
// [ErrDuplicatePolicy]. An empty list is valid and yields an identity
// wrapper.
func NewSafetyNet(policies ...Policy) (*SafetyNet, error) {
	for i := range policies {
		for j := i + 1; j < len(policies); j++ {
			if policies[i] == policies[j] {
				return nil, ErrDuplicatePolicy
			}
		}
	}
	return &SafetyNet{policies: slices.Clone(policies)}, nil
}

// Apply wraps op with every policy in the net, innermost last. With no
// policies configured op is returned unchanged.
func (s *SafetyNet) Apply(op Operation) Operation {
	for i := len(s.policies) - 1; i >= 0; i-- {
		op = s.policies[i].Wrap(op)
	}
	return op
}

// Execute runs op through the policy chain.
func (s *SafetyNet) Execute(ctx context.Context, op Operation) (any, error) {
	return s.Apply(op)(ctx)
}

// Execute runs fn through net and returns a typed result, mirroring the
// untyped [SafetyNet.Execute]. Policies return the operation's result
// unchanged, so the assertion only fails when fn itself returned nothing.
func Execute[T any](ctx context.Context, net *SafetyNet, fn func(ctx context.Context) (T, error)) (T, error) {
	res, err := net.Execute(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return v, nil
}
