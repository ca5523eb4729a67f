package skip

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/mhr3/smart/alphabet"
	"github.com/mhr3/smart/match"
)

// bits maps a string of '0' and '1' characters to the symbols 0 and 1.
func bits(s string) []byte {
	b := make([]byte, len(s))
	for i := range s {
		b[i] = s[i] - '0'
	}
	return b
}

// allBinary returns every binary string of length n.
func allBinary(n int) [][]byte {
	out := make([][]byte, 0, 1<<n)
	for v := 0; v < 1<<n; v++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(v>>i) & 1
		}
		out = append(out, b)
	}
	return out
}

func search(t *testing.T, a alphabet.Alphabet, pattern, text []byte) int {
	t.Helper()
	s := New(a, nil)
	require.NoError(t, s.Preprocess(pattern))
	got, err := s.Search(text)
	require.NoError(t, err)
	return got
}

func TestSearchScenarios(t *testing.T) {
	tests := []struct {
		pattern, text string
		want          int
	}{
		{"01", "010101", 3},
		{"000", "00000", 3},
		{"11", "0000000000", 0},
		{"0110101", "0110", 0},
		{"0110", "0110", 1},
		{"1", "10110", 3},
		{"0100", "0100100100", 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.pattern, tt.text), func(t *testing.T) {
			assert.Equal(t, tt.want, search(t, alphabet.Binary, bits(tt.pattern), bits(tt.text)))
		})
	}
}

func TestSearchMatchesReferenceExhaustive(t *testing.T) {
	var texts [][]byte
	for n := 0; n <= 10; n++ {
		texts = append(texts, allBinary(n)...)
	}
	for m := 1; m <= 6; m++ {
		for _, pattern := range allBinary(m) {
			s := New(alphabet.Binary, nil)
			require.NoError(t, s.Preprocess(pattern))
			for _, text := range texts {
				got, err := s.Search(text)
				require.NoError(t, err)
				if want := match.Count(pattern, text); got != want {
					t.Fatalf("Search(%v, %v) = %d, want %d", pattern, text, got, want)
				}
			}
		}
	}
}

func TestSearchMatchesReferenceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gen := func(n int, a alphabet.Alphabet) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = a.Min + byte(rng.Intn(a.Size()))
		}
		return b
	}
	alphabets := []alphabet.Alphabet{alphabet.Binary, {Min: 'a', Max: 'd'}, {Min: 'a', Max: 'z'}}
	for _, a := range alphabets {
		for i := 0; i < 300; i++ {
			m := 1 + rng.Intn(40)
			text := gen(rng.Intn(2000), a)
			pattern := gen(m, a)
			if len(text) > m && rng.Intn(2) == 0 {
				// plant the pattern at a random offset
				copy(text[rng.Intn(len(text)-m):], pattern)
			}
			want := match.Count(pattern, text)
			assert.Equal(t, want, search(t, a, pattern, text), "alphabet=%v m=%d n=%d", a, m, len(text))
			assert.Equal(t, want, search(t, alphabet.Span(pattern, text), pattern, text), "derived alphabet")
		}
	}
}

// Every alignment must contain a whole sampled window, whatever its offset
// relative to the sampling grid.
func TestWindowsCoverEveryAlignment(t *testing.T) {
	for sigma := 2; sigma <= 5; sigma++ {
		a := alphabet.Alphabet{Min: 0, Max: byte(sigma - 1)}
		for m := 1; m <= 40; m++ {
			s := New(a, nil)
			require.NoError(t, s.Preprocess(make([]byte, m)))
			l := s.FactorLength()
			for n := m; n <= 3*m+5; n++ {
				first, stride, last := s.windows(n)
				require.Equal(t, m-l+1, stride)
				for start := 0; start+m <= n; start++ {
					covered := false
					for j := first; j <= last; j += stride {
						if start <= j && j+l <= start+m {
							covered = true
							break
						}
					}
					if !covered {
						t.Fatalf("sigma=%d m=%d l=%d n=%d: occurrence at %d spans no sampled window", sigma, m, l, n, start)
					}
				}
			}
		}
	}
}

func TestOffGridOccurrence(t *testing.T) {
	// m=8 over {0,1} gives l=3 and stride 6: windows start at 5, 11, 17.
	pattern := bits("01101001")
	text := make([]byte, 24)
	copy(text[9:], pattern)

	s := New(alphabet.Binary, nil)
	require.NoError(t, s.Preprocess(pattern))
	require.Equal(t, 3, s.FactorLength())
	first, stride, _ := s.windows(len(text))
	require.NotZero(t, (9-first)%stride, "occurrence must not start on a window")

	got, err := s.Search(text)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestTrieOffsets(t *testing.T) {
	tr, err := BuildTrie(bits("0101"), 2, alphabet.Binary, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.FactorLength())
	assert.Equal(t, 5, tr.Nodes())
	assert.Equal(t, 3, tr.Size())
	assert.Equal(t, []int{0, 2}, tr.Offsets(bits("01")))
	assert.Equal(t, []int{1}, tr.Offsets(bits("10")))
	assert.Nil(t, tr.Offsets(bits("00")))
	assert.Nil(t, tr.Offsets(bits("0")))
	assert.Nil(t, tr.Offsets([]byte{0, 7}))
}

func TestTrieInsertionOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		pattern := make([]byte, 2+rng.Intn(60))
		for j := range pattern {
			pattern[j] = byte(rng.Intn(2))
		}
		l := alphabet.FactorLength(len(pattern), 2)

		inOrder, err := BuildTrie(pattern, l, alphabet.Binary, nil)
		require.NoError(t, err)

		shuffled := newTrie(alphabet.Binary, DefaultMaxTrieBytes)
		shuffled.l = l
		_, err = shuffled.addNode()
		require.NoError(t, err)
		for _, k := range rng.Perm(len(pattern) - l + 1) {
			require.NoError(t, shuffled.insert(pattern[k:k+l], k))
		}

		assert.Equal(t, inOrder.Nodes(), shuffled.Nodes())
		for k := 0; k+l <= len(pattern); k++ {
			want := inOrder.Offsets(pattern[k : k+l])
			got := slices.Clone(shuffled.Offsets(pattern[k : k+l]))
			require.True(t, slices.IsSorted(want), "in-order build must list offsets ascending")
			slices.Sort(got)
			assert.Equal(t, want, got)
		}

		text := make([]byte, 500)
		for j := range text {
			text[j] = byte(rng.Intn(2))
		}
		a := New(alphabet.Binary, nil)
		require.NoError(t, a.Preprocess(pattern))
		want, err := a.Search(text)
		require.NoError(t, err)
		a.trie = shuffled
		got, err := a.Search(text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestOutOfAlphabetSymbols(t *testing.T) {
	// text bytes outside the alphabet fail the trie walk instead of indexing out
	// of range, so an alignment whose sampled windows hold them is not reported
	text := []byte{0, 1, 9, 0, 1, 255, 0, 1}
	assert.Equal(t, 0, search(t, alphabet.Binary, bits("0190"), text))
	assert.Equal(t, 3, search(t, alphabet.Binary, bits("01"), text))

	// pattern factors holding out-of-range bytes are not indexed
	tr, err := BuildTrie([]byte{0, 1, 7, 1, 0}, 2, alphabet.Binary, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tr.Offsets([]byte{0, 1}))
	assert.Equal(t, []int{3}, tr.Offsets([]byte{1, 0}))
	assert.Equal(t, 2, tr.Size())
}

func TestSearchErrors(t *testing.T) {
	s := New(alphabet.Binary, nil)
	_, err := s.Search(bits("0101"))
	assert.ErrorIs(t, err, match.ErrNotPreprocessed)
	assert.ErrorIs(t, s.Preprocess(nil), match.ErrEmptyPattern)
	assert.Zero(t, s.FactorLength())

	require.NoError(t, s.Preprocess(bits("01")))
	s.Release()
	_, err = s.Search(bits("0101"))
	assert.ErrorIs(t, err, match.ErrNotPreprocessed)

	tight := New(alphabet.Full, &Options{MaxTrieBytes: 4096})
	err = tight.Preprocess([]byte("the quick brown fox jumps over the lazy dog"))
	assert.ErrorIs(t, err, match.ErrAllocation)
	assert.NotErrorIs(t, err, match.ErrNotApplicable)
	_, err = tight.Search([]byte("fox"))
	assert.ErrorIs(t, err, match.ErrNotPreprocessed)

	unlimited := New(alphabet.Full, &Options{MaxTrieBytes: -1})
	require.NoError(t, unlimited.Preprocess([]byte("the quick brown fox jumps over the lazy dog")))
}

func TestIndexLimit(t *testing.T) {
	saved := maxIndex
	t.Cleanup(func() { maxIndex = saved })
	maxIndex = 8

	s := New(alphabet.Binary, &Options{MaxTrieBytes: -1})
	require.NoError(t, s.Preprocess(bits("00000000")))
	got, err := s.Search(bits("0000000000"))
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	err = s.Preprocess(bits("000000000"))
	assert.ErrorIs(t, err, match.ErrAllocation)
	_, err = s.Search(bits("0000000000"))
	assert.ErrorIs(t, err, match.ErrNotPreprocessed)

	// factors 01, 11 and 10 need six nodes
	maxIndex = 4
	assert.ErrorIs(t, s.Preprocess(bits("0110")), match.ErrAllocation)
}

func TestPreprocessReusesArena(t *testing.T) {
	s := New(alphabet.Binary, nil)
	require.NoError(t, s.Preprocess(bits("0110100110010110")))
	first, err := s.Search(bits("0110100110010110"))
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	require.NoError(t, s.Preprocess(bits("11")))
	got, err := s.Search(bits("0111"))
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, s.FactorLength())
}

func BenchmarkSearch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	text := make([]byte, 1<<20)
	for i := range text {
		text[i] = byte(rng.Intn(2))
	}
	for _, m := range []int{8, 32, 128, 512} {
		pattern := append([]byte(nil), text[1000:1000+m]...)
		b.Run(fmt.Sprintf("m=%d", m), func(b *testing.B) {
			s := New(alphabet.Binary, nil)
			if err := s.Preprocess(pattern); err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(text)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Search(text); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
