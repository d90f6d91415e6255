// Package breaker provides a circuit breaker driven by windowed
// success/failure ratios.
//
// States:
//   - Closed: calls flow normally; a classified failure that fills the
//     window to the failure limit trips the circuit.
//   - Open: calls are rejected with [ErrOpen] until the cooldown elapses,
//     at which point the breaker moves to HalfOpen and lets the call
//     through.
//   - HalfOpen: calls flow while a fresh window fills; once full, the
//     success limit (when configured) or the failure limit decides whether
//     the circuit closes again or reopens.
//
// Limits are exact fractions: a failure limit of 2/5 sizes the closed
// window at 5 calls and trips when at least 2 of them failed.
//
// A Breaker guards a single logical call path and performs no internal
// locking. Callers invoking the same breaker from multiple goroutines must
// serialize access or use one breaker per concurrency domain.
package breaker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	gss "github.com/Keksclan/goSafeSquirrel"
	"github.com/Keksclan/goSafeSquirrel/store"
	"github.com/Keksclan/goSafeSquirrel/window"
)

// DefaultThreshold is the limit applied when a config leaves a limit unset:
// a single sample decides.
var DefaultThreshold = window.MustRatio(1, 1)

// Config holds the circuit breaker parameters.
type Config struct {
	// Cooldown is how long the breaker rejects calls after opening.
	Cooldown time.Duration

	// FailureLimit trips the circuit: the closed window holds Den() calls
	// and the breaker opens when the failure ratio reaches the limit.
	// The zero Ratio means DefaultThreshold (1/1).
	FailureLimit window.Ratio

	// SuccessLimit closes the circuit from half-open: the half-open window
	// holds Den() calls and the breaker closes when the success ratio
	// reaches the limit. When set (≠ 1/1) it takes precedence over failure
	// accounting in half-open. The zero Ratio means DefaultThreshold.
	SuccessLimit window.Ratio
}

// state is the tagged union of the three circuit states. Exactly one state
// value is live per breaker; transitions replace it wholesale.
type state struct {
	kind      State
	win       *window.Window
	openUntil time.Time // set only when kind == Open
}

// Breaker guards an operation with the windowed three-state protocol. It is
// not safe for concurrent use; see the package comment.
type Breaker struct {
	cooldown     time.Duration
	failureLimit window.Ratio
	successLimit window.Ratio
	useSuccess   bool // success limit explicitly configured

	classify Classifier
	onChange StateChangeFunc
	st       store.Store
	key      string
	log      *zap.Logger
	nowFunc  func() time.Time // for testing; defaults to time.Now

	cur          state
	failureCount int // consecutive classified failures, persisted
}

// New creates a Breaker. Unset limits default to 1/1 (a single sample
// decides). When a store is configured via [WithStore], the persisted
// snapshot for the resource key seeds the initial state; a missing or
// unreadable snapshot seeds a closed breaker with an empty window.
func New(cfg Config, opts ...Option) (*Breaker, error) {
	if cfg.Cooldown < 0 {
		return nil, fmt.Errorf("breaker: cooldown must be non-negative, got %v", cfg.Cooldown)
	}

	failureLimit := cfg.FailureLimit
	if failureLimit.IsZero() {
		failureLimit = DefaultThreshold
	}
	successLimit := cfg.SuccessLimit
	if successLimit.IsZero() {
		successLimit = DefaultThreshold
	}

	b := &Breaker{
		cooldown:     cfg.Cooldown,
		failureLimit: failureLimit,
		successLimit: successLimit,
		useSuccess:   successLimit.Cmp(DefaultThreshold) != 0,
		classify:     func(error) bool { return true },
		log:          zap.NewNop(),
		nowFunc:      time.Now,
	}
	for _, o := range opts {
		o(b)
	}

	b.cur = state{kind: Closed, win: b.newWindow(b.failureLimit.Den())}
	if b.st != nil {
		b.loadState()
	}
	return b, nil
}

// State returns the current state. It does not advance the state machine;
// an elapsed cooldown is only acted upon by the next execution.
func (b *Breaker) State() State {
	return b.cur.kind
}

// History returns the live outcome window of the current state. When the
// circuit is open this is the closed-state window that tripped it, kept for
// inspection. The caller must not mutate it.
func (b *Breaker) History() *window.Window {
	return b.cur.win
}

// Execute guards op with the circuit breaker. Rejected calls return
// [ErrOpen] without invoking op. Otherwise op runs and its outcome is
// recorded: a classified failure counts against the window, any other
// error is recorded as a success, and either way the original error is
// returned unchanged.
func (b *Breaker) Execute(ctx context.Context, op gss.Operation) (any, error) {
	if err := b.validate(ctx); err != nil {
		return nil, err
	}

	res, err := op(ctx)
	if err != nil {
		if b.classify(err) {
			b.markFailure(ctx)
		} else {
			b.markSuccess(ctx)
		}
		b.saveState(ctx)
		return nil, err
	}

	b.markSuccess(ctx)
	b.saveState(ctx)
	return res, nil
}

// Wrap implements the root package's Policy contract.
func (b *Breaker) Wrap(next gss.Operation) gss.Operation {
	return func(ctx context.Context) (any, error) {
		return b.Execute(ctx, next)
	}
}

// validate is the guard check before an attempt. An open circuit rejects the
// call until the cooldown elapses; after that the breaker promotes itself to
// half-open and lets the call through.
func (b *Breaker) validate(ctx context.Context) error {
	if b.cur.kind != Open {
		return nil
	}
	if b.nowFunc().Before(b.cur.openUntil) {
		return ErrOpen
	}
	b.transition(ctx, HalfOpen)
	return nil
}

func (b *Breaker) markSuccess(ctx context.Context) {
	switch b.cur.kind {
	case Closed:
		b.failureCount = 0
		b.cur.win.Add(true)
	case HalfOpen:
		b.failureCount = 0
		b.cur.win.Add(true)
		b.evaluateHalfOpen(ctx)
	}
}

func (b *Breaker) markFailure(ctx context.Context) {
	switch b.cur.kind {
	case Closed:
		b.failureCount++
		b.cur.win.Add(false)
		if b.cur.win.IsFull() {
			if r, err := b.cur.win.FailureRatio(); err == nil && r.Cmp(b.failureLimit) >= 0 {
				b.transition(ctx, Open)
			}
		}
	case HalfOpen:
		b.failureCount++
		b.cur.win.Add(false)
		b.evaluateHalfOpen(ctx)
	}
}

// evaluateHalfOpen decides the circuit's fate once the half-open window is
// full. A configured success limit takes precedence; failure accounting is
// only the fallback.
func (b *Breaker) evaluateHalfOpen(ctx context.Context) {
	if !b.cur.win.IsFull() {
		return
	}

	if b.useSuccess {
		r, err := b.cur.win.SuccessRatio()
		if err == nil && r.Cmp(b.successLimit) >= 0 {
			b.transition(ctx, Closed)
		} else {
			b.transition(ctx, Open)
		}
		return
	}

	r, err := b.cur.win.FailureRatio()
	if err == nil && r.Cmp(b.failureLimit) >= 0 {
		b.transition(ctx, Open)
	} else {
		b.transition(ctx, Closed)
	}
}

// transition replaces the live state. Opening carries the current window
// forward so the failing run stays inspectable; closing and half-opening
// start fresh windows and reset the failure counter. The observer fires
// after the swap, then the new snapshot is persisted.
func (b *Breaker) transition(ctx context.Context, to State) {
	from := b.cur.kind

	switch to {
	case Closed:
		b.cur = state{kind: Closed, win: b.newWindow(b.failureLimit.Den())}
		b.failureCount = 0
	case Open:
		b.cur = state{kind: Open, win: b.cur.win, openUntil: b.nowFunc().Add(b.cooldown)}
	case HalfOpen:
		b.cur = state{kind: HalfOpen, win: b.newWindow(b.halfOpenSize())}
		b.failureCount = 0
	}

	if b.onChange != nil {
		b.onChange(b, from, to)
	}
	b.saveState(ctx)
}

// halfOpenSize returns the half-open window capacity: the success limit's
// sample size when a success limit was configured, the failure limit's
// otherwise.
func (b *Breaker) halfOpenSize() int {
	if b.useSuccess {
		return b.successLimit.Den()
	}
	return b.failureLimit.Den()
}

func (b *Breaker) newWindow(size int) *window.Window {
	w, err := window.New(size)
	if err != nil {
		// Unreachable: ratio denominators are always >= 1.
		panic(err)
	}
	return w
}

// loadState seeds the breaker from the store. Absent or malformed snapshots
// and store errors all fall back to the closed default.
func (b *Breaker) loadState() {
	snap, ok, err := b.st.GetState(context.Background(), b.key)
	if err != nil {
		b.log.Warn("failed to load breaker state, starting closed",
			zap.String("resource", b.key), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	kind, known := parseState(snap.State)
	if !known {
		b.log.Warn("ignoring unknown persisted breaker state",
			zap.String("resource", b.key), zap.String("state", snap.State))
		return
	}

	switch kind {
	case Closed:
		b.cur = state{kind: Closed, win: b.newWindow(b.failureLimit.Den())}
	case Open:
		openUntil := snap.OpenUntil
		if openUntil.IsZero() {
			openUntil = b.nowFunc().Add(b.cooldown)
		}
		b.cur = state{kind: Open, win: b.newWindow(b.failureLimit.Den()), openUntil: openUntil}
	case HalfOpen:
		b.cur = state{kind: HalfOpen, win: b.newWindow(b.halfOpenSize())}
	}
	b.failureCount = snap.FailureCount
}

// saveState persists the current snapshot. Store failures are logged; the
// guarded call is never failed on their account.
func (b *Breaker) saveState(ctx context.Context) {
	if b.st == nil {
		return
	}

	snap := store.Snapshot{
		State:        b.cur.kind.String(),
		FailureCount: b.failureCount,
	}
	if b.cur.kind == Open {
		snap.OpenUntil = b.cur.openUntil
	}

	if err := b.st.SetState(ctx, b.key, snap); err != nil {
		b.log.Warn("failed to persist breaker state",
			zap.String("resource", b.key), zap.Error(err))
	}
}
