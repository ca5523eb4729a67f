// Package alphabet describes the contiguous byte ranges the matchers index by.
//
// Matchers that keep per-symbol tables (tries, shift tables) address them with
// Index, which maps a byte to a zero-based slot and reports false for bytes
// outside the range so lookups fail closed instead of indexing out of bounds.
package alphabet

import (
	"errors"
	"fmt"

	"github.com/segmentio/asm/ascii"
)

// ErrInvalidRange is returned by New when min > max.
var ErrInvalidRange = errors.New("alphabet: min greater than max")

// Alphabet is the inclusive symbol range [Min, Max].
type Alphabet struct {
	Min byte
	Max byte
}

// Binary is the fixed {0, 1} alphabet used by the common benchmark configuration.
var Binary = Alphabet{Min: 0, Max: 1}

// Full covers every byte value.
var Full = Alphabet{Min: 0, Max: 0xff}

// New returns the alphabet [min, max].
func New(min, max byte) (Alphabet, error) {
	if min > max {
		return Alphabet{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	return Alphabet{Min: min, Max: max}, nil
}

// Span returns the smallest alphabet holding every byte of parts.
// With no bytes at all it returns the single-symbol alphabet {0}.
func Span(parts ...[]byte) Alphabet {
	lo, hi := byte(0xff), byte(0)
	seen := false
	for _, p := range parts {
		for _, c := range p {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		seen = seen || len(p) > 0
	}
	if !seen {
		return Alphabet{}
	}
	return Alphabet{Min: lo, Max: hi}
}

// Size is σ, the number of symbols in the range.
func (a Alphabet) Size() int {
	return int(a.Max) - int(a.Min) + 1
}

// Contains reports whether c lies in the range.
func (a Alphabet) Contains(c byte) bool {
	return c >= a.Min && c <= a.Max
}

// Index maps c to its zero-based slot c-Min.
func (a Alphabet) Index(c byte) (int, bool) {
	if c < a.Min || c > a.Max {
		return 0, false
	}
	return int(c - a.Min), true
}

// ContainsAll reports whether every byte of p lies in the range.
func (a Alphabet) ContainsAll(p []byte) bool {
	for _, c := range p {
		if !a.Contains(c) {
			return false
		}
	}
	return true
}

func (a Alphabet) String() string {
	if ascii.ValidPrintString(string([]byte{a.Min, a.Max})) {
		return fmt.Sprintf("[%q-%q]", a.Min, a.Max)
	}
	return fmt.Sprintf("[%#04x-%#04x]", a.Min, a.Max)
}

// FactorLength returns the window length l used by the skip-search trie, about
// log_sigma(m): starting from l=1 and t=m, t is divided by sigma
// while it is still greater than sigma, counting each step. A sigma of one or less
// always yields 1. The result never exceeds m for m >= 1.
func FactorLength(m, sigma int) int {
	if sigma <= 1 {
		return 1
	}
	l, tmp := 1, m
	for tmp > sigma {
		tmp /= sigma
		l++
	}
	if m >= 1 && l > m {
		l = m
	}
	return l
}
