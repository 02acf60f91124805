package u16str

import "iter"

// CharIter walks the code points of a Str.
//
// Iteration starts at code unit 0 and stops at the end of the view. Once
// Next returns false the iterator stays exhausted.
type CharIter struct {
	s     Str
	index int
	r     rune
}

// Chars returns an iterator over the code points of s.
func (s Str) Chars() *CharIter {
	return &CharIter{s: s}
}

// Next advances to the next code point.
// Returns true if there is one, false if iteration is complete.
func (it *CharIter) Next() bool {
	r, size := it.s.DecodeRuneAt(it.index)
	if size == 0 {
		return false
	}
	it.r = r
	it.index += size
	return true
}

// Rune returns the current code point.
func (it *CharIter) Rune() rune {
	return it.r
}

// CharIndexIter walks the code points of a Str together with the code
// unit index each one starts at.
type CharIndexIter struct {
	s     Str
	index int
	start int
	r     rune
}

// CharIndices returns an iterator over (index, code point) pairs of s.
func (s Str) CharIndices() *CharIndexIter {
	return &CharIndexIter{s: s}
}

// Next advances to the next code point.
// Returns true if there is one, false if iteration is complete.
func (it *CharIndexIter) Next() bool {
	r, size := it.s.DecodeRuneAt(it.index)
	if size == 0 {
		return false
	}
	it.start = it.index
	it.r = r
	it.index += size
	return true
}

// Index returns the code unit index the current code point starts at.
func (it *CharIndexIter) Index() int {
	return it.start
}

// Rune returns the current code point.
func (it *CharIndexIter) Rune() rune {
	return it.r
}

// Runes returns a range-over-func sequence of the code points of s.
func (s Str) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for it := s.Chars(); it.Next(); {
			if !yield(it.Rune()) {
				return
			}
		}
	}
}

// RuneIndices returns a range-over-func sequence of (index, code point)
// pairs of s.
func (s Str) RuneIndices() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for it := s.CharIndices(); it.Next(); {
			if !yield(it.Index(), it.Rune()) {
				return
			}
		}
	}
}
