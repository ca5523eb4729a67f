package match

import "github.com/mhr3/smart/internal/bytealg"

// Count returns the number of offsets s in [0, len(text)-len(pattern)] with
// text[s:s+len(pattern)] == pattern. An empty pattern occurs nowhere.
func Count(pattern, text []byte) int {
	if len(pattern) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(pattern) <= len(text); {
		k := bytealg.Index(text[i:], pattern)
		if k < 0 {
			break
		}
		count++
		i += k + 1
	}
	return count
}

// Naive is the brute-force Matcher: it compares the pattern at every offset.
type Naive struct {
	pattern []byte
}

func (n *Naive) Preprocess(pattern []byte) error {
	if len(pattern) == 0 {
		return ErrEmptyPattern
	}
	n.pattern = pattern
	return nil
}

func (n *Naive) Search(text []byte) (int, error) {
	if n.pattern == nil {
		return 0, ErrNotPreprocessed
	}
	x, m := n.pattern, len(n.pattern)
	count := 0
	for s := 0; s+m <= len(text); s++ {
		if bytealg.Equal(x, text[s:s+m]) {
			count++
		}
	}
	return count, nil
}

func (n *Naive) Release() {
	n.pattern = nil
}
