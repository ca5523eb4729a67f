// Package smart registers the exact string matching algorithms of this module
// under stable names and runs them through the two-phase match contract.
//
//	res, err := smart.Count("gammaskip", pattern, text, nil)
//	switch {
//	case errors.Is(err, match.ErrNotApplicable):
//		// input outside the algorithm's preconditions
//	case err != nil:
//		// allocation failure or bad input
//	default:
//		fmt.Println(res.Count, res.Preprocessing, res.Searching)
//	}
package smart

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/mhr3/smart/alphabet"
	"github.com/mhr3/smart/match"
	"github.com/mhr3/smart/skip"
	"github.com/mhr3/smart/tvsbs"
)

// ErrUnknownAlgorithm is returned by Lookup and Count for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Config selects the alphabet and limits algorithms are built with.
type Config struct {
	// Alphabet is the symbol range of pattern and text. DefaultConfig, used
	// when Count gets a nil Config, sets alphabet.Binary.
	Alphabet alphabet.Alphabet
	// DeriveAlphabet replaces Alphabet by the byte range found in pattern and
	// text when running through Count.
	DeriveAlphabet bool
	// Skip configures the trie based algorithms; nil means skip.DefaultOptions.
	Skip *skip.Options
	// Run is passed to match.Run; nil means match.DefaultRunOptions.
	Run *match.RunOptions
}

// DefaultConfig returns the binary alphabet configuration.
func DefaultConfig() *Config {
	return &Config{Alphabet: alphabet.Binary}
}

// Algorithm is a registered matcher constructor.
type Algorithm struct {
	Name        string
	Description string
	New         func(cfg *Config) match.Matcher
}

var registry = map[string]Algorithm{}

func register(a Algorithm) {
	if _, dup := registry[a.Name]; dup {
		panic("smart: algorithm registered twice: " + a.Name)
	}
	registry[a.Name] = a
}

func init() {
	register(Algorithm{
		Name:        "bf",
		Description: "brute force, compares the pattern at every offset",
		New:         func(*Config) match.Matcher { return &match.Naive{} },
	})
	register(Algorithm{
		Name:        "gammaskip",
		Description: "skip search over a trie of pattern factors, configured alphabet",
		New: func(cfg *Config) match.Matcher {
			return skip.New(cfg.Alphabet, cfg.Skip)
		},
	})
	register(Algorithm{
		Name:        "gskip",
		Description: "alpha skip search pinned to the binary alphabet",
		New: func(cfg *Config) match.Matcher {
			return skip.New(alphabet.Binary, cfg.Skip)
		},
	})
	register(Algorithm{
		Name:        "tvsbs-w4",
		Description: "TVSBS with four converging windows",
		New:         func(*Config) match.Matcher { return tvsbs.New() },
	})
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	a, ok := registry[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// Names lists the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count runs the named algorithm over pattern and text. cfg may be nil.
func Count(name string, pattern, text []byte, cfg *Config) (match.Result, error) {
	a, err := Lookup(name)
	if err != nil {
		return match.Result{}, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.DeriveAlphabet {
		derived := *cfg
		derived.Alphabet = alphabet.Span(pattern, text)
		cfg = &derived
	}
	res, err := match.Run(a.New(cfg), pattern, text, cfg.Run)
	if err != nil {
		return res, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

// Legacy folds a Count outcome into the integer contract of benchmark
// drivers: the count on success, -1 when the input is not
// applicable. Any other error is returned unchanged.
func Legacy(res match.Result, err error) (int, error) {
	switch {
	case err == nil:
		return res.Count, nil
	case errors.Is(err, match.ErrNotApplicable):
		return -1, nil
	}
	return 0, err
}
