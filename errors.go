package u16str

import (
	"errors"
	"fmt"
)

// Errors reported by u16str operations.
var (
	// ErrIndexOutOfBounds indicates an index or range lies outside a view.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrIndexOverflow indicates an inclusive range end cannot be advanced
	// without overflowing int.
	ErrIndexOverflow = errors.New("index overflow")

	// ErrInvalidUTF16 indicates a code-unit run contains an unpaired surrogate.
	ErrInvalidUTF16 = errors.New("invalid utf-16")
)

// IndexError is the panic value raised by indexing operations that fail.
type IndexError struct {
	Op  string // Operation that failed (e.g. "at", "slice", "remove")
	Lo  int    // Offending index, or range start
	Hi  int    // Range end; equal to Lo for single-index operations
	Len int    // Length of the view at the time of the call
	Err error

	span bool
}

func (e *IndexError) Error() string {
	if errors.Is(e.Err, ErrIndexOverflow) {
		return fmt.Sprintf("u16str: %s: inclusive end %d overflows", e.Op, e.Hi)
	}
	if !e.span {
		return fmt.Sprintf("u16str: %s: index %d out of bounds (len %d)", e.Op, e.Lo, e.Len)
	}
	return fmt.Sprintf("u16str: %s: range [%d:%d] out of bounds (len %d)", e.Op, e.Lo, e.Hi, e.Len)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

func outOfBounds(op string, index, length int) *IndexError {
	return &IndexError{Op: op, Lo: index, Hi: index, Len: length, Err: ErrIndexOutOfBounds}
}

func rangeOutOfBounds(op string, start, end, length int) *IndexError {
	return &IndexError{Op: op, Lo: start, Hi: end, Len: length, Err: ErrIndexOutOfBounds, span: true}
}

func rangeOverflow(op string, start, end, length int) *IndexError {
	return &IndexError{Op: op, Lo: start, Hi: end, Len: length, Err: ErrIndexOverflow, span: true}
}
