package skip

// nilCell terminates a position list.
const nilCell = -1

// cell is one link of a position list.
type cell struct {
	off  int32
	next int32
}

// posList is a singly linked list of pattern offsets living in a cells arena.
// The zero value is not a valid empty list; use emptyList.
type posList struct {
	head int32
	tail int32
}

var emptyList = posList{head: nilCell, tail: nilCell}

func (l posList) empty() bool {
	return l.head == nilCell
}

// cells owns the links of every list of a trie. Lists only grow; the whole
// arena is dropped at once by reset.
type cells struct {
	items []cell
}

// push appends off at the tail of l, keeping insertion order.
func (c *cells) push(l *posList, off int) {
	idx := int32(len(c.items))
	c.items = append(c.items, cell{off: int32(off), next: nilCell})
	if l.head == nilCell {
		l.head = idx
	} else {
		c.items[l.tail].next = idx
	}
	l.tail = idx
}

// appendTo appends the offsets of l to dst in list order.
func (c *cells) appendTo(dst []int, l posList) []int {
	for i := l.head; i != nilCell; i = c.items[i].next {
		dst = append(dst, int(c.items[i].off))
	}
	return dst
}

func (c *cells) len() int {
	return len(c.items)
}

func (c *cells) reset() {
	c.items = c.items[:0]
}
