// Package match defines the contract shared by the exact string matching
// algorithms and the helpers a benchmarking harness drives them with.
//
// Every algorithm counts the offsets at which a pattern occurs verbatim in a
// text. Preprocessing and search are separate calls so that a caller can time
// them independently:
//
//	res, err := match.Run(m, pattern, text, &match.RunOptions{
//		Hooks: match.Hooks{EndPreprocessing: func() { ... }},
//	})
//	if errors.Is(err, match.ErrNotApplicable) {
//		// the algorithm cannot handle this input
//	}
package match

import (
	"fmt"
	"time"
)

// Matcher is one exact matching algorithm.
// A Matcher is not safe for concurrent use; run concurrent searches on
// separate Matchers.
type Matcher interface {
	// Preprocess analyses pattern. The pattern must not be modified until the
	// Matcher is preprocessed again or released.
	Preprocess(pattern []byte) error
	// Search returns the number of occurrences of the preprocessed pattern in text.
	Search(text []byte) (int, error)
}

// Releaser is implemented by matchers that hold preprocessing structures
// worth dropping once a search is done.
type Releaser interface {
	Release()
}

// Hooks are called at the phase boundaries of Run. Nil hooks are skipped.
type Hooks struct {
	BeginPreprocessing func()
	EndPreprocessing   func()
	BeginSearch        func()
	EndSearch          func()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// RunOptions configures Run.
type RunOptions struct {
	Hooks Hooks
	// Now is the clock used for phase durations (default time.Now).
	Now func() time.Time
}

// DefaultRunOptions returns options with no hooks and the wall clock.
func DefaultRunOptions() *RunOptions {
	return &RunOptions{Now: time.Now}
}

// Result is the outcome of a successful Run.
type Result struct {
	Count         int
	Preprocessing time.Duration
	Searching     time.Duration
}

// Run preprocesses pattern, searches text and releases the matcher.
// Failures of either phase are returned unchanged (wrapped with the phase name)
// and never folded into the count.
func Run(m Matcher, pattern, text []byte, opts *RunOptions) (Result, error) {
	if opts == nil {
		opts = DefaultRunOptions()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if r, ok := m.(Releaser); ok {
		defer r.Release()
	}

	var res Result

	call(opts.Hooks.BeginPreprocessing)
	start := now()
	err := m.Preprocess(pattern)
	res.Preprocessing = now().Sub(start)
	call(opts.Hooks.EndPreprocessing)
	if err != nil {
		return res, fmt.Errorf("preprocessing: %w", err)
	}

	call(opts.Hooks.BeginSearch)
	start = now()
	res.Count, err = m.Search(text)
	res.Searching = now().Sub(start)
	call(opts.Hooks.EndSearch)
	if err != nil {
		return res, fmt.Errorf("search: %w", err)
	}
	return res, nil
}
