package offset

import "errors"

// Errors returned by offset operations.
var (
	// ErrUnorderedOffsets indicates the second offset of a pair precedes
	// the first.
	ErrUnorderedOffsets = errors.New("second offset precedes first")

	// ErrUnknownEncoding indicates an unrecognized position encoding name.
	ErrUnknownEncoding = errors.New("unknown position encoding")
)
