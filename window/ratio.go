package window

import "fmt"

// Ratio is an exact rational number k/N, stored in lowest terms. It is used
// both as a measured success/failure ratio and as a trigger threshold, where
// the denominator of the configured fraction doubles as the required sample
// size (a failure limit of 2/5 means "evaluate after 5 calls, trip when at
// least 2 of them failed"). Because ratios are kept in lowest terms, 2/10
// and 1/5 are the same threshold and require 5 samples.
//
// The zero Ratio is "unset"; configuration code substitutes the default
// threshold 1/1 for it.
type Ratio struct {
	num, den int
}

// NewRatio creates the ratio num/den. The denominator must be at least 1 and
// the numerator must lie in [0, den].
func NewRatio(num, den int) (Ratio, error) {
	if den < 1 {
		return Ratio{}, fmt.Errorf("window: ratio denominator must be positive, got %d", den)
	}
	if num < 0 || num > den {
		return Ratio{}, fmt.Errorf("window: ratio numerator must be in [0, %d], got %d", den, num)
	}
	if num == 0 {
		return Ratio{num: 0, den: 1}, nil
	}
	g := gcd(num, den)
	return Ratio{num: num / g, den: den / g}, nil
}

// MustRatio is like NewRatio but panics on invalid input. Intended for
// threshold literals in configuration.
func MustRatio(num, den int) Ratio {
	r, err := NewRatio(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// Num returns the numerator in lowest terms.
func (r Ratio) Num() int { return r.num }

// Den returns the denominator in lowest terms. For thresholds this is the
// required sample size.
func (r Ratio) Den() int { return r.den }

// IsZero reports whether r is the unset zero value.
func (r Ratio) IsZero() bool { return r.den == 0 }

// Cmp compares r with o exactly, returning -1, 0 or +1. Comparison uses
// cross multiplication in 64-bit arithmetic, so no precision is lost.
func (r Ratio) Cmp(o Ratio) int {
	left := int64(r.num) * int64(o.den)
	right := int64(o.num) * int64(r.den)
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Float64 returns the ratio as a float, for display only.
func (r Ratio) Float64() float64 {
	if r.den == 0 {
		return 0
	}
	return float64(r.num) / float64(r.den)
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
