package backoff

import (
	"errors"
	"testing"
	"time"
)

func TestExponential_Growth(t *testing.T) {
	e, err := NewExponential(50*time.Millisecond, 100*time.Second, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 50 * time.Millisecond},
		{2, 100 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{4, 400 * time.Millisecond},
	}
	for _, c := range cases {
		got, err := e.ForAttempt(c.attempt)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", c.attempt, err)
		}
		if got != c.want {
			t.Fatalf("attempt %d: expected %v, got %v", c.attempt, c.want, got)
		}
	}
}

func TestExponential_CappedAtMax(t *testing.T) {
	e, _ := NewExponential(100*time.Millisecond, 500*time.Millisecond, 2)

	got, err := e.ForAttempt(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 500*time.Millisecond {
		t.Fatalf("expected cap at 500ms, got %v", got)
	}
}

func TestExponential_InvalidAttempt(t *testing.T) {
	e, _ := NewExponential(time.Millisecond, time.Second, 2)

	for _, attempt := range []int{0, -3} {
		if _, err := e.ForAttempt(attempt); !errors.Is(err, ErrInvalidAttempt) {
			t.Fatalf("attempt %d: expected ErrInvalidAttempt, got %v", attempt, err)
		}
	}
}

func TestExponential_JitterOffsetsWithinBounds(t *testing.T) {
	e, err := NewExponential(100*time.Millisecond, time.Minute, 2, WithJitter(0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Deterministic extremes of the ±(delay*jitter) offset.
	e.randFn = func() float64 { return 0 } // minimum offset
	got, _ := e.ForAttempt(1)
	if got != 50*time.Millisecond {
		t.Fatalf("expected 50ms at lower jitter bound, got %v", got)
	}

	e.randFn = func() float64 { return 1 } // maximum offset
	got, _ = e.ForAttempt(1)
	if got != 150*time.Millisecond {
		t.Fatalf("expected 150ms at upper jitter bound, got %v", got)
	}
}

func TestExponential_JitterAppliedBeforeCap(t *testing.T) {
	e, _ := NewExponential(100*time.Millisecond, 120*time.Millisecond, 2, WithJitter(0.5))
	e.randFn = func() float64 { return 1 }

	got, _ := e.ForAttempt(1)
	if got != 120*time.Millisecond {
		t.Fatalf("expected jittered delay capped at 120ms, got %v", got)
	}
}

func TestNewExponential_Validation(t *testing.T) {
	if _, err := NewExponential(-time.Second, time.Second, 2); err == nil {
		t.Fatal("expected error for negative min")
	}
	if _, err := NewExponential(time.Second, time.Millisecond, 2); err == nil {
		t.Fatal("expected error for max below min")
	}
	if _, err := NewExponential(time.Millisecond, time.Second, 0.5); err == nil {
		t.Fatal("expected error for factor below 1")
	}
	if _, err := NewExponential(time.Millisecond, time.Second, 2, WithJitter(1.5)); err == nil {
		t.Fatal("expected error for jitter above 1")
	}
	if _, err := NewExponential(time.Millisecond, time.Second, 2, WithJitter(-0.1)); err == nil {
		t.Fatal("expected error for negative jitter")
	}
}

func TestFixed_ConstantDelay(t *testing.T) {
	f := Fixed(time.Second)

	for _, attempt := range []int{1, 2, 5, 100} {
		got, err := f.ForAttempt(attempt)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
		if got != time.Second {
			t.Fatalf("attempt %d: expected 1s, got %v", attempt, got)
		}
	}

	if _, err := f.ForAttempt(0); !errors.Is(err, ErrInvalidAttempt) {
		t.Fatal("expected ErrInvalidAttempt for attempt 0")
	}
}
