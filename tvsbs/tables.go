package tvsbs

// Tables holds the two bad-character shift tables of a pattern of length m,
// indexed by a pair of adjacent text bytes. Every entry is in [1, m+2].
type Tables struct {
	m        int
	forward  []int32 // keyed by the two bytes after a window, for cursors moving up
	backward []int32 // keyed by the two bytes before a window, for cursors moving down
}

// NewTables computes the shift tables of pattern, which must hold at least two
// bytes.
func NewTables(pattern []byte) *Tables {
	t := &Tables{}
	t.build(pattern, make([]byte, len(pattern)))
	return t
}

// build fills both tables; rev is scratch space of len(pattern) bytes.
func (t *Tables) build(pattern, rev []byte) {
	m := len(pattern)
	t.m = m
	if t.forward == nil {
		t.forward = make([]int32, 256*256)
		t.backward = make([]int32, 256*256)
	}
	for i := range rev {
		rev[i] = pattern[m-1-i]
	}
	fillShifts(t.forward, pattern)
	fillShifts(t.backward, rev)
}

// fillShifts writes the Berry-Ravindran shifts of x. The writes are ordered so
// each cell ends up with the smallest applicable shift.
func fillShifts(tab []int32, x []byte) {
	m := len(x)
	for i := range tab {
		tab[i] = int32(m + 2)
	}
	for a := 0; a < 256; a++ {
		tab[a<<8|int(x[0])] = int32(m + 1)
	}
	for i := 0; i < m-1; i++ {
		tab[int(x[i])<<8|int(x[i+1])] = int32(m - i)
	}
	row := int(x[m-1]) << 8
	for b := 0; b < 256; b++ {
		tab[row|b] = 1
	}
}

// Forward is the shift for a cursor moving up after the text bytes a, b that
// follow its window.
func (t *Tables) Forward(a, b byte) int {
	return int(t.forward[int(a)<<8|int(b)])
}

// Backward is the shift for a cursor moving down after the text bytes a, b that
// precede its window, a being the nearer one.
func (t *Tables) Backward(a, b byte) int {
	return int(t.backward[int(a)<<8|int(b)])
}

// PatternLen is the m the tables were built for.
func (t *Tables) PatternLen() int {
	return t.m
}
