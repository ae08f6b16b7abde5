package estimate

import (
	"math"
	"math/rand"
	"unicode"
)

// Estimator computes pseudo-random closure time estimates. The output is
// intentionally non-deterministic; callers must not assume repeatability
// for the same input.
type Estimator struct {
	intn func(n int) int
}

// New builds an estimator backed by the default math/rand source.
func New() *Estimator {
	return &Estimator{intn: rand.Intn}
}

// NewWithSource builds an estimator with an injected random draw, used by
// tests that need a fixed random term.
func NewWithSource(intn func(n int) int) *Estimator {
	return &Estimator{intn: intn}
}

// Hours returns the estimated closure time in hours:
// ten hours per non-whitespace character of title and category, plus a
// uniform random term in [1, 240].
func (e *Estimator) Hours(title, category string) int {
	base := (nonWhitespaceLength(title) + nonWhitespaceLength(category)) * 10
	return base + e.intn(240) + 1
}

// DaysFromHours converts an hour estimate to whole days by rounding.
func DaysFromHours(hours int) int {
	return int(math.Round(float64(hours) / 24))
}

func nonWhitespaceLength(s string) int {
	count := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
