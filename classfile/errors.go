package classfile

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF         = errors.New("unexpected end of class data")
	ErrMalformedField        = errors.New("malformed field")
	ErrInvalidMagic          = errors.New("invalid magic number")
	ErrUnknownConstantTag    = errors.New("unknown constant pool tag")
	ErrInvalidTextEncoding   = errors.New("invalid modified UTF-8")
	ErrTruncatedConstantPool = errors.New("truncated constant pool")
	ErrUnresolvedReference   = errors.New("unresolved constant pool reference")
	ErrUnsupportedVersion    = errors.New("unsupported class file version")
	ErrTrailingData          = errors.New("trailing data after class file")
	ErrInvalidConstant       = errors.New("invalid constant")
)

// MagicError reports the value found where 0xCAFEBABE was expected.
type MagicError struct {
	Value uint32
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic number: 0x%08X (expected 0x%08X)", e.Value, uint32(Magic))
}

func (e *MagicError) Unwrap() error { return ErrInvalidMagic }

// UnknownTagError carries the raw tag byte and its offset in the input.
type UnknownTagError struct {
	Tag    uint8
	Offset int
}

func (e *UnknownTagError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("unknown constant pool tag: %d", e.Tag)
	}
	return fmt.Sprintf("unknown constant pool tag %d at offset %d", e.Tag, e.Offset)
}

func (e *UnknownTagError) Unwrap() error { return ErrUnknownConstantTag }

// TextEncodingError points at the first byte of a Utf8 payload that is not
// valid modified UTF-8.
type TextEncodingError struct {
	Offset int
	Reason string
}

func (e *TextEncodingError) Error() string {
	return fmt.Sprintf("invalid modified UTF-8 at byte %d: %s", e.Offset, e.Reason)
}

func (e *TextEncodingError) Unwrap() error { return ErrInvalidTextEncoding }

// UnresolvedReferenceError is returned when a pool index cannot be looked up.
type UnresolvedReferenceError struct {
	Index  uint16
	Reason string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved constant pool reference #%d: %s", e.Index, e.Reason)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// PoolError is returned when the input ends before every declared slot of
// the constant pool has been decoded. It matches both
// ErrTruncatedConstantPool and the underlying cause.
type PoolError struct {
	Declared uint16
	Decoded  int
	Err      error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("constant pool truncated after %d of %d slots: %v", e.Decoded, e.Declared-1, e.Err)
}

func (e *PoolError) Unwrap() []error { return []error{ErrTruncatedConstantPool, e.Err} }

// CheckError describes one semantic problem found by Check.
type CheckError struct {
	Index  uint16
	Tag    ConstantTag
	Reason string
}

func (e *CheckError) Error() string {
	if e.Index == 0 {
		return e.Reason
	}
	return fmt.Sprintf("constant pool entry %d (%s): %s", e.Index, e.Tag, e.Reason)
}

func (e *CheckError) Unwrap() error { return ErrInvalidConstant }
