package bytealg

import "bytes"

// Index returns the offset of the first occurrence of needle in haystack,
// or -1 when there is none.
func Index(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}
