package consensus

import (
	"encoding/binary"
	"fmt"
)

// cursor is a minimal forward-only reader over a header's wire bytes,
// the same shape as the teacher's transaction-parsing cursor: a slice
// and a position, with bounds-checked reads that return an error rather
// than panicking on truncated input.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b, pos: 0}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("parse: truncated")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readRest returns every byte remaining in the cursor without advancing
// past the end, used for the trailing variable-length solution field.
func (c *cursor) readRest() []byte {
	b := c.b[c.pos:]
	c.pos = len(c.b)
	return b
}
