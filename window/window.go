// Package window provides a fixed-capacity ring buffer of boolean call
// outcomes and the exact rational [Ratio] type used to express trigger
// thresholds over it.
package window

import (
	"errors"
	"fmt"
)

// ErrEmptyWindow is returned when a ratio is requested from a window that
// has not recorded any outcome yet.
var ErrEmptyWindow = errors.New("window: ratio of empty window is undefined")

// Window is a fixed-capacity ring buffer of boolean outcomes. It always
// holds the last ≤N recorded outcomes in insertion order; once full it
// stays full. Window is not safe for concurrent use.
type Window struct {
	buf   []bool
	pos   int // next write position
	count int // recorded outcomes, up to len(buf)
	fails int // failures currently in the window
}

// New creates a Window with the given capacity. Capacity must be at least 1.
func New(size int) (*Window, error) {
	if size < 1 {
		return nil, fmt.Errorf("window: size must be positive, got %d", size)
	}
	return &Window{buf: make([]bool, size)}, nil
}

// Add records an outcome (true = success). When the window is full the
// oldest entry is evicted.
func (w *Window) Add(ok bool) {
	if w.count == len(w.buf) {
		if !w.buf[w.pos] {
			w.fails--
		}
	} else {
		w.count++
	}

	w.buf[w.pos] = ok
	if !ok {
		w.fails++
	}
	w.pos = (w.pos + 1) % len(w.buf)
}

// IsFull reports whether the window has recorded as many outcomes as its
// capacity.
func (w *Window) IsFull() bool {
	return w.count == len(w.buf)
}

// Len returns the number of recorded outcomes.
func (w *Window) Len() int {
	return w.count
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.buf)
}

// Successes returns the number of successful outcomes in the window.
func (w *Window) Successes() int {
	return w.count - w.fails
}

// Failures returns the number of failed outcomes in the window.
func (w *Window) Failures() int {
	return w.fails
}

// SuccessRatio returns the exact fraction of successes over recorded
// outcomes. It returns ErrEmptyWindow when nothing has been recorded.
func (w *Window) SuccessRatio() (Ratio, error) {
	if w.count == 0 {
		return Ratio{}, ErrEmptyWindow
	}
	return MustRatio(w.Successes(), w.count), nil
}

// FailureRatio returns the exact fraction of failures over recorded
// outcomes. It returns ErrEmptyWindow when nothing has been recorded.
func (w *Window) FailureRatio() (Ratio, error) {
	if w.count == 0 {
		return Ratio{}, ErrEmptyWindow
	}
	return MustRatio(w.fails, w.count), nil
}

// Values returns the recorded outcomes oldest-first.
func (w *Window) Values() []bool {
	out := make([]bool, 0, w.count)
	start := w.pos - w.count
	if start < 0 {
		start += len(w.buf)
	}
	for i := 0; i < w.count; i++ {
		out = append(out, w.buf[(start+i)%len(w.buf)])
	}
	return out
}
