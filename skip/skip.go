// Package skip implements skip search over a trie of pattern factors
// (Gamma Skip Search, an Alpha Skip Search variant for small alphabets).
//
// Preprocessing indexes every window of length l of the pattern, where l is
// about log_σ(m). The search then samples text windows of length l with a
// stride of m-l+1, so every occurrence contains at least one sampled window;
// each sampled window that is in the trie yields one candidate alignment per
// recorded pattern offset, and candidates are verified in full.
package skip

import (
	"github.com/mhr3/smart/alphabet"
	"github.com/mhr3/smart/internal/bytealg"
	"github.com/mhr3/smart/match"
)

// DefaultMaxTrieBytes bounds the trie arena when Options leave it unset.
const DefaultMaxTrieBytes = 256 << 20

// Options configures a Matcher.
type Options struct {
	// MaxTrieBytes caps the memory of the factor trie (0 = DefaultMaxTrieBytes,
	// negative = unlimited). Preprocessing fails with match.ErrAllocation past it.
	MaxTrieBytes int
}

// DefaultOptions returns options with the default trie budget.
func DefaultOptions() *Options {
	return &Options{MaxTrieBytes: DefaultMaxTrieBytes}
}

func (o *Options) maxTrieBytes() int {
	switch {
	case o.MaxTrieBytes == 0:
		return DefaultMaxTrieBytes
	case o.MaxTrieBytes < 0:
		return 0
	}
	return o.MaxTrieBytes
}

// Matcher counts pattern occurrences with skip search. It implements
// match.Matcher; preprocess once and search any number of texts.
type Matcher struct {
	alpha   alphabet.Alphabet
	opts    Options
	pattern []byte
	trie    *Trie
}

var _ match.Matcher = (*Matcher)(nil)

// New returns a Matcher over alphabet a. opts may be nil.
func New(a alphabet.Alphabet, opts *Options) *Matcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Matcher{alpha: a, opts: *opts}
}

// Preprocess builds the factor trie of pattern.
func (s *Matcher) Preprocess(pattern []byte) error {
	s.pattern = nil
	if len(pattern) == 0 {
		return match.ErrEmptyPattern
	}
	if s.trie == nil {
		s.trie = newTrie(s.alpha, s.opts.maxTrieBytes())
	}
	l := alphabet.FactorLength(len(pattern), s.alpha.Size())
	if err := s.trie.build(pattern, l); err != nil {
		s.trie.reset()
		return err
	}
	s.pattern = pattern
	return nil
}

// FactorLength is the window length chosen for the current pattern, 0 before
// preprocessing.
func (s *Matcher) FactorLength() int {
	if s.pattern == nil {
		return 0
	}
	return s.trie.l
}

// windows describes the sampled text windows for a text of length n: starts
// first, first+stride, ... up to and including last.
func (s *Matcher) windows(n int) (first, stride, last int) {
	m, l := len(s.pattern), s.trie.l
	return m - l, m - l + 1, n - l
}

// Search counts the occurrences of the preprocessed pattern in text.
// A text shorter than the pattern holds none.
func (s *Matcher) Search(text []byte) (int, error) {
	if s.pattern == nil {
		return 0, match.ErrNotPreprocessed
	}
	t := s.trie
	x, m, n, l := s.pattern, len(s.pattern), len(text), t.l
	count := 0
	first, stride, last := s.windows(n)
	for j := first; j <= last; j += stride {
		node, ok := t.walk(text[j : j+l])
		if !ok {
			continue
		}
		for c := t.lists[node].head; c != nilCell; c = t.cells.items[c].next {
			start := j - int(t.cells.items[c].off)
			if start+m <= n && bytealg.Equal(x, text[start:start+m]) {
				count++
			}
		}
	}
	return count, nil
}

// Release drops the trie. The Matcher must be preprocessed again before the
// next search.
func (s *Matcher) Release() {
	s.pattern = nil
	s.trie = nil
}
