package match

import "errors"

// Sentinel errors shared by every matcher.
var (
	// ErrNotApplicable is returned when the input violates a structural
	// precondition of the algorithm (for example a pattern or text that is too
	// short). No count was computed.
	ErrNotApplicable = errors.New("input not applicable to algorithm")
	// ErrAllocation is returned when preprocessing would grow an index past its
	// configured budget. The algorithm has no degraded mode.
	ErrAllocation = errors.New("allocation budget exceeded")
	// ErrEmptyPattern is returned by Preprocess for a zero-length pattern.
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrNotPreprocessed is returned by Search before a successful Preprocess.
	ErrNotPreprocessed = errors.New("search called before preprocess")
)
