// Package bytealg holds the byte comparison kernels the matchers verify
// candidate alignments with.
package bytealg

import "encoding/binary"

// Equal reports whether a and b hold the same bytes.
// The first and last bytes are compared before the body since a candidate that
// survived a filter usually differs at one of its ends.
func Equal(a, b []byte) bool {
	n := len(a)
	if n != len(b) {
		return false
	}
	if n == 0 {
		return true
	}
	if a[0] != b[0] || a[n-1] != b[n-1] {
		return false
	}
	return equalBody(a, b)
}

// equalWords compares 8 bytes at a time, finishing with an overlapping
// final word.
func equalWords(a, b []byte) bool {
	n := len(a)
	if n < 8 {
		for i := 0; i < n; i++ {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		if binary.LittleEndian.Uint64(a[i:]) != binary.LittleEndian.Uint64(b[i:]) {
			return false
		}
	}
	if i < n {
		return binary.LittleEndian.Uint64(a[n-8:]) == binary.LittleEndian.Uint64(b[n-8:])
	}
	return true
}
