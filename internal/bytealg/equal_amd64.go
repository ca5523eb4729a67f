package bytealg

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// wordLimit is the length below which the word loop beats the call into the
// runtime's vector compare: one 32-byte register with AVX2, one 16-byte
// register with SSE2 only.
var wordLimit = 16

func init() {
	if cpu.X86.HasAVX2 {
		wordLimit = 32
	}
}

func equalBody(a, b []byte) bool {
	if len(a) < wordLimit {
		return equalWords(a, b)
	}
	return bytes.Equal(a, b)
}
