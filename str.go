package u16str

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/dshills/u16str/codec"
)

// Str is a view over a contiguous run of UTF-16 code units.
//
// A Str does not own its storage. Sub-views produced by slicing share the
// backing array and are capped so that appending to one can never write
// past its window into the owner's storage.
type Str []uint16

// FromUTF16 returns a view over units after checking that every surrogate
// is correctly paired. The view aliases units; nothing is copied.
func FromUTF16(units []uint16) (Str, error) {
	if i := invalidIndex(units); i >= 0 {
		return nil, fmt.Errorf("%w: unpaired surrogate %#04x at index %d", ErrInvalidUTF16, units[i], i)
	}
	return Str(units[:len(units):len(units)]), nil
}

// FromUTF16Unchecked reinterprets units as a view without validating
// surrogate pairing. Decoding such a view is always defined: unpaired
// surrogates decode to their raw value.
func FromUTF16Unchecked(units []uint16) Str {
	return Str(units[:len(units):len(units)])
}

// Len returns the number of code units in the view.
func (s Str) Len() int {
	return len(s)
}

// IsEmpty returns true if the view has no code units.
func (s Str) IsEmpty() bool {
	return len(s) == 0
}

// At returns the code unit at index i. It panics with an *IndexError if
// i is out of bounds.
func (s Str) At(i int) uint16 {
	if i < 0 || i >= len(s) {
		panic(outOfBounds("at", i, len(s)))
	}
	return s[i]
}

// Get returns the code unit at index i, or false if i is out of bounds.
func (s Str) Get(i int) (uint16, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// Set overwrites the code unit at index i. The write is visible through
// every view sharing the same storage.
func (s Str) Set(i int, cu uint16) {
	if i < 0 || i >= len(s) {
		panic(outOfBounds("set", i, len(s)))
	}
	s[i] = cu
}

// Units returns a copy of the raw code units.
func (s Str) Units() []uint16 {
	return slices.Clone([]uint16(s))
}

// CodeUnits iterates the raw code units with their indices.
func (s Str) CodeUnits() iter.Seq2[int, uint16] {
	return func(yield func(int, uint16) bool) {
		for i, cu := range s {
			if !yield(i, cu) {
				return
			}
		}
	}
}

// DecodeRuneAt decodes the code point starting at index i and returns it
// with its width in code units. A high surrogate followed by a low
// surrogate decodes as a pair; any other unit is returned as its raw
// value with width 1. It returns (0, 0) when i is out of bounds.
func (s Str) DecodeRuneAt(i int) (rune, int) {
	if i < 0 || i >= len(s) {
		return 0, 0
	}
	cu := s[i]
	if codec.IsHighSurrogate(cu) && i+1 < len(s) && codec.IsLowSurrogate(s[i+1]) {
		return codec.DecodePair(cu, s[i+1]), 2
	}
	return codec.DecodeUnit(cu), 1
}

// RuneCount returns the number of code points the view decodes to.
func (s Str) RuneCount() int {
	n := 0
	for i := 0; i < len(s); n++ {
		_, size := s.DecodeRuneAt(i)
		i += size
	}
	return n
}

// Valid reports whether every surrogate in the view is correctly paired.
func (s Str) Valid() bool {
	return invalidIndex(s) < 0
}

// Clone copies the view into a new Buffer.
func (s Str) Clone() *Buffer {
	return &Buffer{buf: slices.Clone([]uint16(s))}
}

// ToOwned is an alias for Clone.
func (s Str) ToOwned() *Buffer {
	return s.Clone()
}

// Equal reports whether both views hold the same code units.
func (s Str) Equal(other Str) bool {
	return slices.Equal(s, other)
}

// Compare compares two views by code unit, returning -1, 0 or 1.
func (s Str) Compare(other Str) int {
	return slices.Compare(s, other)
}

// String decodes the view to UTF-8. Unpaired surrogates cannot be
// represented in UTF-8 and are written as U+FFFD.
func (s Str) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for it := s.Chars(); it.Next(); {
		sb.WriteRune(it.Rune())
	}
	return sb.String()
}

// GoString returns a debug form of the view.
func (s Str) GoString() string {
	return fmt.Sprintf("u16str.Str(%q)", s.String())
}

// invalidIndex returns the index of the first unpaired surrogate, or -1.
func invalidIndex(units []uint16) int {
	for i := 0; i < len(units); i++ {
		cu := units[i]
		switch {
		case codec.IsHighSurrogate(cu):
			if i+1 >= len(units) || !codec.IsLowSurrogate(units[i+1]) {
				return i
			}
			i++
		case codec.IsLowSurrogate(cu):
			return i
		}
	}
	return -1
}
