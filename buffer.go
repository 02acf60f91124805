package u16str

import (
	"iter"
	"slices"

	"github.com/dshills/u16str/codec"
)

// Buffer is a growable, owned run of UTF-16 code units.
//
// The zero value is an empty buffer ready to use. Mutating methods insert
// and remove whole code points so they never leave a surrogate half at a
// boundary they created. Views returned by Str share the buffer's storage
// and are invalidated by any mutation.
type Buffer struct {
	buf []uint16
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// WithCapacity returns an empty buffer with room for n code units.
func WithCapacity(n int) *Buffer {
	return &Buffer{buf: make([]uint16, 0, n)}
}

// FromString encodes the code points of a UTF-8 string. Invalid UTF-8
// bytes are encoded as U+FFFD, one per byte.
func FromString(text string) *Buffer {
	b := WithCapacity(len(text))
	b.PushString(text)
	return b
}

// FromRunes encodes a sequence of code points.
func FromRunes(runes []rune) *Buffer {
	b := WithCapacity(len(runes))
	for _, r := range runes {
		b.Push(r)
	}
	return b
}

// FromStr copies the contents of a view.
func FromStr(s Str) *Buffer {
	return s.Clone()
}

// Str returns a view of the buffer's current contents.
func (b *Buffer) Str() Str {
	return Str(b.buf[:len(b.buf):len(b.buf)])
}

// Len returns the number of code units in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the number of code units the buffer can hold without
// reallocating.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// IsEmpty returns true if the buffer holds no code units.
func (b *Buffer) IsEmpty() bool {
	return len(b.buf) == 0
}

// Reserve grows the buffer's capacity to hold at least n more code units.
func (b *Buffer) Reserve(n int) {
	b.buf = slices.Grow(b.buf, n)
}

// Clear truncates the buffer to empty, keeping its capacity.
func (b *Buffer) Clear() {
	b.buf = b.buf[:0]
}

// Truncate shortens the buffer to n code units. It panics with an
// *IndexError if n is negative or greater than the length.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.buf) {
		panic(outOfBounds("truncate", n, len(b.buf)))
	}
	b.buf = b.buf[:n]
}

// Push appends the encoding of r.
func (b *Buffer) Push(r rune) {
	b.buf = codec.AppendRune(b.buf, r)
}

// PushStr appends the raw code units of s without re-decoding them.
func (b *Buffer) PushStr(s Str) {
	b.buf = append(b.buf, s...)
}

// PushString appends the code points of a UTF-8 string.
func (b *Buffer) PushString(text string) {
	for _, r := range text {
		b.buf = codec.AppendRune(b.buf, r)
	}
}

// Insert inserts the encoding of r starting at code unit index i,
// shifting the following units right. It panics with an *IndexError if
// i is outside [0, Len()].
func (b *Buffer) Insert(i int, r rune) {
	b.checkInsert("insert", i)
	var tmp [2]uint16
	b.buf = slices.Insert(b.buf, i, codec.AppendRune(tmp[:0], r)...)
}

// InsertStr inserts the raw code units of s at index i.
func (b *Buffer) InsertStr(i int, s Str) {
	b.checkInsert("insert", i)
	b.buf = slices.Insert(b.buf, i, s...)
}

// InsertString inserts the code points of a UTF-8 string at index i.
func (b *Buffer) InsertString(i int, text string) {
	b.checkInsert("insert", i)
	units := make([]uint16, 0, len(text))
	for _, r := range text {
		units = codec.AppendRune(units, r)
	}
	b.buf = slices.Insert(b.buf, i, units...)
}

// Remove deletes the code point starting at index i and returns it. A
// surrogate pair starting at i is removed as a whole; any other unit is
// removed alone and returned as its raw value. It panics with an
// *IndexError if i is outside [0, Len()).
func (b *Buffer) Remove(i int) rune {
	if i < 0 || i >= len(b.buf) {
		panic(outOfBounds("remove", i, len(b.buf)))
	}
	r, size := b.Str().DecodeRuneAt(i)
	b.buf = slices.Delete(b.buf, i, i+size)
	return r
}

// Pop removes the last code point and returns it, or false if the buffer
// is empty. A trailing surrogate pair is removed as a whole.
func (b *Buffer) Pop() (rune, bool) {
	n := len(b.buf)
	if n == 0 {
		return 0, false
	}
	last := b.buf[n-1]
	if n >= 2 && codec.IsLowSurrogate(last) && codec.IsHighSurrogate(b.buf[n-2]) {
		r := codec.DecodePair(b.buf[n-2], last)
		b.buf = b.buf[:n-2]
		return r, true
	}
	b.buf = b.buf[:n-1]
	return codec.DecodeUnit(last), true
}

func (b *Buffer) checkInsert(op string, i int) {
	if i < 0 || i > len(b.buf) {
		panic(outOfBounds(op, i, len(b.buf)))
	}
}

// --- view forwarding ---

// At returns the code unit at index i.
func (b *Buffer) At(i int) uint16 {
	return b.Str().At(i)
}

// Get returns the code unit at index i, or false if i is out of bounds.
func (b *Buffer) Get(i int) (uint16, bool) {
	return b.Str().Get(i)
}

// Slice returns the sub-view selected by idx.
func (b *Buffer) Slice(idx SliceIndex) Str {
	return idx.Index(b.Str())
}

// GetSlice returns the sub-view selected by idx, or false if idx is
// invalid.
func (b *Buffer) GetSlice(idx SliceIndex) (Str, bool) {
	return idx.Get(b.Str())
}

// Chars returns an iterator over the buffer's code points.
func (b *Buffer) Chars() *CharIter {
	return b.Str().Chars()
}

// CharIndices returns an iterator over (index, code point) pairs.
func (b *Buffer) CharIndices() *CharIndexIter {
	return b.Str().CharIndices()
}

// Runes returns a range-over-func sequence of the buffer's code points.
func (b *Buffer) Runes() iter.Seq[rune] {
	return b.Str().Runes()
}

// RuneIndices returns a range-over-func sequence of (index, code point)
// pairs.
func (b *Buffer) RuneIndices() iter.Seq2[int, rune] {
	return b.Str().RuneIndices()
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return b.Str().Clone()
}

// Equal reports whether both buffers hold the same code units.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.Str().Equal(other.Str())
}

// String decodes the buffer to UTF-8.
func (b *Buffer) String() string {
	return b.Str().String()
}
