//go:build !amd64

package bytealg

import "bytes"

var wordLimit = 8

func equalBody(a, b []byte) bool {
	if len(a) < wordLimit {
		return equalWords(a, b)
	}
	return bytes.Equal(a, b)
}
