// Package store defines the persistence contract used to share circuit
// breaker state across processes, plus an in-memory and a Redis-backed
// implementation.
//
// The breaker loads a snapshot once at construction and writes one after
// every transition and every guarded execution. Concurrent writers for the
// same resource key are resolved last-write-wins; a backend that needs
// stronger guarantees must provide its own mutual exclusion around the
// load-then-save cycle.
package store

import (
	"context"
	"time"
)

// Snapshot is the persisted view of a breaker's state.
type Snapshot struct {
	// State is the breaker state label ("closed", "open" or "half_open").
	State string

	// FailureCount is the running count of consecutive classified failures.
	FailureCount int

	// OpenUntil is the instant at which the cooldown expires. It is the zero
	// time unless the circuit is open.
	OpenUntil time.Time
}

// Store persists breaker snapshots keyed by resource. Implementations
// surface their errors; the breaker logs them and falls back to in-memory
// behaviour rather than failing the guarded call.
type Store interface {
	// GetState returns the snapshot for resourceKey. The boolean reports
	// whether a snapshot exists.
	GetState(ctx context.Context, resourceKey string) (Snapshot, bool, error)

	// SetState stores the snapshot for resourceKey, replacing any previous
	// one.
	SetState(ctx context.Context, resourceKey string, snap Snapshot) error
}
