// Package tvsbs implements a four-window variant of the TVSBS exact matching
// algorithm.
//
// Four cursors scan the text at once: the first half is scanned from both of
// its ends toward the middle, and so is the second half. Cursors moving up
// shift by the Berry-Ravindran table of the pattern, cursors moving down by the
// table of the reversed pattern. A window is verified in full only when some
// cursor sits on the pattern's first byte and some cursor sits on its last byte.
//
// The scan reads past both ends of the text, so it runs over a copy of the
// text framed by guard bytes. Search keeps that copy in a private buffer;
// Guard and SearchGuarded let the caller own it. The caller's text is never
// written.
package tvsbs

import (
	"errors"
	"fmt"

	"github.com/mhr3/smart/internal/bytealg"
	"github.com/mhr3/smart/match"
)

// Matcher counts pattern occurrences with the four-window scan. It implements
// match.Matcher. Patterns need at least two bytes and texts at least m+2;
// otherwise match.ErrNotApplicable is returned.
type Matcher struct {
	pattern []byte
	tables  Tables
	rev     []byte
	scratch []byte
}

var _ match.Matcher = (*Matcher)(nil)

// New returns an empty Matcher.
func New() *Matcher {
	return &Matcher{}
}

// Preprocess builds the forward and backward shift tables of pattern.
func (s *Matcher) Preprocess(pattern []byte) error {
	s.pattern = nil
	m := len(pattern)
	if m == 0 {
		return match.ErrEmptyPattern
	}
	if m < 2 {
		return fmt.Errorf("%w: pattern length %d, need at least 2", match.ErrNotApplicable, m)
	}
	if cap(s.rev) < m {
		s.rev = make([]byte, m)
	}
	s.tables.build(pattern, s.rev[:m])
	s.pattern = pattern
	return nil
}

// Tables exposes the shift tables of the current pattern, nil before
// preprocessing.
func (s *Matcher) Tables() *Tables {
	if s.pattern == nil {
		return nil
	}
	return &s.tables
}

// ErrGuardLayout is returned by SearchGuarded for a buffer whose length does
// not match the layout Guard produces.
var ErrGuardLayout = errors.New("tvsbs: buffer is not a guarded text")

// GuardLen is the length of the buffer Guard lays out for a text of n bytes.
func (s *Matcher) GuardLen(n int) int {
	m := len(s.pattern)
	return m + 2 + n + 2*m
}

// Guard lays text out in buf as
//
//	[ m+2 zero bytes | text | pattern | pattern ]
//
// reusing buf when it is large enough, and returns the laid out buffer for
// SearchGuarded.
func (s *Matcher) Guard(buf, text []byte) ([]byte, error) {
	if s.pattern == nil {
		return nil, match.ErrNotPreprocessed
	}
	return s.frame(buf, text), nil
}

func (s *Matcher) frame(buf, text []byte) []byte {
	m, n := len(s.pattern), len(text)
	lead, size := m+2, s.GuardLen(n)
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	y := buf[:size]
	clear(y[:lead])
	copy(y[lead:], text)
	copy(y[lead+n:], s.pattern)
	copy(y[lead+n+m:], s.pattern)
	return y
}

// Search counts the occurrences of the preprocessed pattern in text. It first
// copies text into an internal guarded buffer, an O(n) step inside the search
// phase; callers timing the scan alone use Guard and SearchGuarded.
func (s *Matcher) Search(text []byte) (int, error) {
	if err := s.check(len(text)); err != nil {
		return 0, err
	}
	s.scratch = s.frame(s.scratch, text)
	return s.scan(s.scratch, len(text)), nil
}

// SearchGuarded counts the occurrences in the first n text bytes of a buffer
// laid out by Guard.
func (s *Matcher) SearchGuarded(buf []byte, n int) (int, error) {
	if err := s.check(n); err != nil {
		return 0, err
	}
	if len(buf) != s.GuardLen(n) {
		return 0, fmt.Errorf("%w: length %d, want %d for a text of %d bytes", ErrGuardLayout, len(buf), s.GuardLen(n), n)
	}
	return s.scan(buf, n), nil
}

func (s *Matcher) check(n int) error {
	if s.pattern == nil {
		return match.ErrNotPreprocessed
	}
	if m := len(s.pattern); n < m+2 {
		return fmt.Errorf("%w: text length %d, need at least %d", match.ErrNotApplicable, n, m+2)
	}
	return nil
}

// scan runs the four cursors over y, a text of n bytes framed by frame.
func (s *Matcher) scan(y []byte, n int) int {
	x := s.pattern
	m := len(x)
	b := m + 2
	fwd, bwd := s.tables.forward, s.tables.backward
	first, last := x[0], x[m-1]

	// s1 and s2 converge on the middle of [0, n/2), s3 and s4 on the middle of
	// [n/2, n-m]. l1..l4 hold each cursor's last verified match; a cursor only
	// verifies windows its partner moving the other way has not reached.
	q := n / 2
	s1, s2, s3, s4 := 0, q-1, q, n-m
	if s2 > n-m {
		s2 = n - m
	}
	// l3 starts below s3 so that s4 may verify s3's starting window when
	// s3 == s4 == n-m.
	l1, l2, l3, l4 := s1, s2, s3-1, s4

	count := 0
	for s1 <= s2 || s3 <= s4 {
		left, right := s1 <= s2, s3 <= s4
		p1, p2, p3, p4 := b+s1, b+s2, b+s3, b+s4
		if (y[p1] == first || y[p2] == first || y[p3] == first || y[p4] == first) &&
			(y[p1+m-1] == last || y[p2+m-1] == last || y[p3+m-1] == last || y[p4+m-1] == last) {
			if s1 < l2 && bytealg.Equal(x, y[p1:p1+m]) {
				l1 = s1
				count++
			}
			if s2 > l1 && bytealg.Equal(x, y[p2:p2+m]) {
				l2 = s2
				count++
			}
			if s3 < l4 && bytealg.Equal(x, y[p3:p3+m]) {
				l3 = s3
				count++
			}
			if s4 > l3 && bytealg.Equal(x, y[p4:p4+m]) {
				l4 = s4
				count++
			}
		}
		// A pair that has crossed has covered its half; it stops moving so its
		// cursors stay inside the guard bytes.
		if left {
			s1 += int(fwd[int(y[p1+m])<<8|int(y[p1+m+1])])
			s2 -= int(bwd[int(y[p2-1])<<8|int(y[p2-2])])
		}
		if right {
			s3 += int(fwd[int(y[p3+m])<<8|int(y[p3+m+1])])
			s4 -= int(bwd[int(y[p4-1])<<8|int(y[p4-2])])
		}
	}
	return count
}

// Release drops the tables and the scratch buffer.
func (s *Matcher) Release() {
	s.pattern = nil
	s.tables = Tables{}
	s.rev = nil
	s.scratch = nil
}
