package transcode

import "errors"

// Errors returned by transcode operations.
var (
	// ErrOddLength indicates UTF-16 input with a trailing half code unit.
	ErrOddLength = errors.New("utf-16 input has odd byte length")

	// ErrUnknownByteOrder indicates an unrecognized byte order name.
	ErrUnknownByteOrder = errors.New("unknown byte order")
)
