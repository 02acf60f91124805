// Package codec provides the UTF-16 surrogate primitives the rest of the
// module is built on.
//
// A code point at or below U+FFFF is stored as a single 16-bit code unit.
// Code points above U+FFFF are stored as a surrogate pair: a high surrogate
// in 0xD800-0xDBFF followed by a low surrogate in 0xDC00-0xDFFF.
//
// All functions are pure and total. Decoding never reports malformed input:
// a pair whose arithmetic does not produce a valid scalar value decodes to
// U+0000.
package codec
