package offset

import (
	"fmt"

	"github.com/dshills/u16str"
)

// UTF8ToUTF16 converts a byte offset into text to the code-unit offset of
// the same position in units. text and units must hold the same text.
// Offsets at or past the last code point map to units.Len().
func UTF8ToUTF16(text string, units u16str.Str, off int) int {
	return unitOffsetOfRank(units, rankUTF8(text, off))
}

// UTF16ToUTF8 converts a code-unit offset into units to the byte offset of
// the same position in text.
func UTF16ToUTF8(units u16str.Str, text string, off int) int {
	return byteOffsetOfRank(text, rankUTF16(units, off))
}

// UTF8ToUTF16Pair converts two byte offsets with a single forward scan of
// each string. second must not precede first.
func UTF8ToUTF16Pair(text string, units u16str.Str, first, second int) (int, int, error) {
	if second < first {
		return 0, 0, fmt.Errorf("%w: %d < %d", ErrUnorderedOffsets, second, first)
	}
	r1, r2 := rankPairUTF8(text, first, second)
	a, b := unitOffsetsOfRanks(units, r1, r2)
	return a, b, nil
}

// UTF16ToUTF8Pair converts two code-unit offsets with a single forward
// scan of each string. second must not precede first.
func UTF16ToUTF8Pair(units u16str.Str, text string, first, second int) (int, int, error) {
	if second < first {
		return 0, 0, fmt.Errorf("%w: %d < %d", ErrUnorderedOffsets, second, first)
	}
	r1, r2 := rankPairUTF16(units, first, second)
	a, b := byteOffsetsOfRanks(text, r1, r2)
	return a, b, nil
}

// --- rank counting ---

// rankUTF8 counts the code points starting strictly before off.
func rankUTF8(text string, off int) int {
	n := 0
	for i := range text {
		if i >= off {
			break
		}
		n++
	}
	return n
}

func rankUTF16(units u16str.Str, off int) int {
	n := 0
	for it := units.CharIndices(); it.Next(); {
		if it.Index() >= off {
			break
		}
		n++
	}
	return n
}

func rankPairUTF8(text string, first, second int) (int, int) {
	r1, n := 0, 0
	for i := range text {
		if i >= second {
			break
		}
		if i < first {
			r1++
		}
		n++
	}
	return r1, n
}

func rankPairUTF16(units u16str.Str, first, second int) (int, int) {
	r1, n := 0, 0
	for it := units.CharIndices(); it.Next(); {
		if it.Index() >= second {
			break
		}
		if it.Index() < first {
			r1++
		}
		n++
	}
	return r1, n
}

// --- rank lookup ---

// byteOffsetOfRank returns the byte offset of the code point with the
// given rank, or len(text) when there is no such code point.
func byteOffsetOfRank(text string, rank int) int {
	n := 0
	for i := range text {
		if n == rank {
			return i
		}
		n++
	}
	return len(text)
}

func unitOffsetOfRank(units u16str.Str, rank int) int {
	n := 0
	for it := units.CharIndices(); it.Next(); {
		if n == rank {
			return it.Index()
		}
		n++
	}
	return units.Len()
}

// byteOffsetsOfRanks resolves two ordered ranks in one pass.
func byteOffsetsOfRanks(text string, r1, r2 int) (int, int) {
	a, b := len(text), len(text)
	n := 0
	for i := range text {
		if n == r1 {
			a = i
		}
		if n == r2 {
			b = i
			break
		}
		n++
	}
	return a, b
}

func unitOffsetsOfRanks(units u16str.Str, r1, r2 int) (int, int) {
	a, b := units.Len(), units.Len()
	n := 0
	for it := units.CharIndices(); it.Next(); {
		if n == r1 {
			a = it.Index()
		}
		if n == r2 {
			b = it.Index()
			break
		}
		n++
	}
	return a, b
}
