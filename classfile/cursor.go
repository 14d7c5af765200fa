package classfile

import (
	"encoding/binary"
	"fmt"
)

// cursor drains a byte buffer front to back. It is owned by a single decode
// call and never seeks backwards.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int { return len(c.data) }

func (c *cursor) offset() int { return c.off }

// readExact returns the next n bytes. The slice aliases the input buffer;
// callers that keep it must copy.
func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformedField, n)
	}
	if n == 0 {
		return c.data[:0], nil
	}
	if len(c.data) == 0 || n > len(c.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, c.off, len(c.data))
	}
	b := c.data[:n:n]
	c.data = c.data[n:]
	c.off += n
	return b, nil
}

func (c *cursor) readU1() (uint8, error) {
	b, err := c.readWidth(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU2() (uint16, error) {
	b, err := c.readWidth(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) readU4() (uint32, error) {
	b, err := c.readWidth(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) readU8() (uint64, error) {
	b, err := c.readWidth(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *cursor) readWidth(n int) ([]byte, error) {
	b, err := c.readExact(n)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: read %d bytes for a %d-byte integer", ErrMalformedField, len(b), n)
	}
	return b, nil
}
