package skip

import (
	"fmt"
	"math"

	"github.com/mhr3/smart/alphabet"
	"github.com/mhr3/smart/match"
)

const (
	rootNode = 0
	// noChild marks an empty child slot; the root is never anyone's child.
	noChild = 0

	cellBytes = 8
)

// maxIndex bounds pattern offsets and node ids, both stored as int32.
var maxIndex = math.MaxInt32

// Trie indexes every length-l window ("factor") of a pattern. Each node owns a
// σ-wide block of child slots and one position list; the node reached after
// consuming a factor lists, in ascending order, the pattern offsets the factor
// starts at.
//
// Nodes live in one arena addressed by index, so releasing the trie is
// dropping the arena.
type Trie struct {
	alpha    alphabet.Alphabet
	sigma    int
	l        int
	children []int32 // node i owns children[i*sigma : (i+1)*sigma]
	lists    []posList
	cells    cells
	maxBytes int
}

func newTrie(a alphabet.Alphabet, maxBytes int) *Trie {
	return &Trie{alpha: a, sigma: a.Size(), maxBytes: maxBytes}
}

// BuildTrie indexes the factors of length l of pattern over alphabet a.
// Factors holding a byte outside a are left out: no in-range text window can
// match them.
func BuildTrie(pattern []byte, l int, a alphabet.Alphabet, opts *Options) (*Trie, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	t := newTrie(a, opts.maxTrieBytes())
	if err := t.build(pattern, l); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Trie) build(pattern []byte, l int) error {
	if l < 1 || l > len(pattern) {
		return fmt.Errorf("factor length %d out of range for pattern of length %d", l, len(pattern))
	}
	if len(pattern) > maxIndex {
		return fmt.Errorf("%w: pattern length %d exceeds %d", match.ErrAllocation, len(pattern), maxIndex)
	}
	t.reset()
	t.l = l
	if _, err := t.addNode(); err != nil {
		return err
	}
	for k := 0; k+l <= len(pattern); k++ {
		if err := t.insert(pattern[k:k+l], k); err != nil {
			return err
		}
	}
	return nil
}

// insert records offset k under factor, creating the missing part of its path.
func (t *Trie) insert(factor []byte, k int) error {
	if !t.alpha.ContainsAll(factor) {
		return nil
	}
	node := int32(rootNode)
	for _, c := range factor {
		slot := int(node)*t.sigma + int(c-t.alpha.Min)
		child := t.children[slot]
		if child == noChild {
			var err error
			if child, err = t.addNode(); err != nil {
				return err
			}
			t.children[slot] = child
		}
		node = child
	}
	if err := t.reserve(0, 1); err != nil {
		return err
	}
	t.cells.push(&t.lists[node], k)
	return nil
}

func (t *Trie) nodeBytes() int {
	return t.sigma*4 + 8
}

func (t *Trie) footprint() int {
	return len(t.lists)*t.nodeBytes() + t.cells.len()*cellBytes
}

// reserve fails with match.ErrAllocation when the arena cannot take the given
// number of extra nodes and cells.
func (t *Trie) reserve(nodes, ncells int) error {
	if t.maxBytes <= 0 {
		return nil
	}
	need := t.footprint() + nodes*t.nodeBytes() + ncells*cellBytes
	if need > t.maxBytes {
		return fmt.Errorf("%w: trie needs %d bytes, budget is %d", match.ErrAllocation, need, t.maxBytes)
	}
	return nil
}

func (t *Trie) addNode() (int32, error) {
	if err := t.reserve(1, 0); err != nil {
		return 0, err
	}
	if len(t.lists) >= maxIndex {
		return 0, fmt.Errorf("%w: more than %d trie nodes", match.ErrAllocation, maxIndex)
	}
	id := int32(len(t.lists))
	t.lists = append(t.lists, emptyList)
	for i := 0; i < t.sigma; i++ {
		t.children = append(t.children, noChild)
	}
	return id, nil
}

// walk follows window from the root. It fails closed on a missing child or a
// byte outside the alphabet.
func (t *Trie) walk(window []byte) (int32, bool) {
	node := int32(rootNode)
	lo, hi := t.alpha.Min, t.alpha.Max
	for _, c := range window {
		if c < lo || c > hi {
			return 0, false
		}
		node = t.children[int(node)*t.sigma+int(c-lo)]
		if node == noChild {
			return 0, false
		}
	}
	return node, true
}

// Offsets returns the pattern offsets recorded for factor, in insertion order,
// or nil when factor is not in the trie.
func (t *Trie) Offsets(factor []byte) []int {
	if len(factor) != t.l {
		return nil
	}
	node, ok := t.walk(factor)
	if !ok || t.lists[node].empty() {
		return nil
	}
	return t.cells.appendTo(nil, t.lists[node])
}

// FactorLength is the window length l the trie was built with.
func (t *Trie) FactorLength() int {
	return t.l
}

// Nodes is the number of nodes in the arena, root included.
func (t *Trie) Nodes() int {
	return len(t.lists)
}

// Size is the number of recorded offsets.
func (t *Trie) Size() int {
	return t.cells.len()
}

// reset empties the arena and keeps its capacity for the next build.
func (t *Trie) reset() {
	t.children = t.children[:0]
	t.lists = t.lists[:0]
	t.cells.reset()
	t.l = 0
}
