package offset

import (
	"errors"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/dshills/u16str"
)

func TestUTF16ToUTF8Pair(t *testing.T) {
	tests := []struct {
		text       string
		u16a, u16b int
		u8a, u8b   int
	}{
		{"a\U00010000b", 1, 3, 1, 5},
		{"a\U0010FFFFb\U00010000", 3, 4, 5, 6},
		{"hello", 0, 5, 0, 5},
		{"", 0, 0, 0, 0},
		{"日本語", 1, 2, 3, 6},
	}

	for _, tt := range tests {
		units := u16str.FromString(tt.text).Str()

		a, b, err := UTF16ToUTF8Pair(units, tt.text, tt.u16a, tt.u16b)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.text, err)
		}
		if a != tt.u8a || b != tt.u8b {
			t.Errorf("%q UTF16ToUTF8Pair(%d,%d): expected (%d,%d), got (%d,%d)",
				tt.text, tt.u16a, tt.u16b, tt.u8a, tt.u8b, a, b)
		}

		a, b, err = UTF8ToUTF16Pair(tt.text, units, tt.u8a, tt.u8b)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.text, err)
		}
		if a != tt.u16a || b != tt.u16b {
			t.Errorf("%q UTF8ToUTF16Pair(%d,%d): expected (%d,%d), got (%d,%d)",
				tt.text, tt.u8a, tt.u8b, tt.u16a, tt.u16b, a, b)
		}
	}
}

func TestSingleOffsets(t *testing.T) {
	text := "a\U00010000b"
	units := u16str.FromString(text).Str()

	tests := []struct {
		u16 int
		u8  int
	}{
		{0, 0},
		{1, 1},
		{3, 5},
		{4, 6},
	}

	for _, tt := range tests {
		if got := UTF16ToUTF8(units, text, tt.u16); got != tt.u8 {
			t.Errorf("UTF16ToUTF8(%d): expected %d, got %d", tt.u16, tt.u8, got)
		}
		if got := UTF8ToUTF16(text, units, tt.u8); got != tt.u16 {
			t.Errorf("UTF8ToUTF16(%d): expected %d, got %d", tt.u8, tt.u16, got)
		}
	}
}

func TestSingleOffsets_InsideCodePoint(t *testing.T) {
	text := "a\U00010000b"
	units := u16str.FromString(text).Str()

	// The low half of the pair: the pair starts before it, so the position
	// resolves to the code point after it.
	if got := UTF16ToUTF8(units, text, 2); got != 5 {
		t.Errorf("Expected mid-pair offset to map to 5, got %d", got)
	}
	// A byte inside the 4-byte sequence behaves the same way.
	if got := UTF8ToUTF16(text, units, 3); got != 3 {
		t.Errorf("Expected mid-sequence offset to map to 3, got %d", got)
	}
}

func TestSingleOffsets_OutOfRange(t *testing.T) {
	text := "ab"
	units := u16str.FromString(text).Str()

	if got := UTF16ToUTF8(units, text, 100); got != len(text) {
		t.Errorf("Expected %d, got %d", len(text), got)
	}
	if got := UTF8ToUTF16(text, units, 100); got != units.Len() {
		t.Errorf("Expected %d, got %d", units.Len(), got)
	}
	if got := UTF8ToUTF16(text, units, -4); got != 0 {
		t.Errorf("Expected 0 for a negative offset, got %d", got)
	}
}

func TestPair_Unordered(t *testing.T) {
	text := "a\U00010000b"
	units := u16str.FromString(text).Str()

	if _, _, err := UTF16ToUTF8Pair(units, text, 3, 1); !errors.Is(err, ErrUnorderedOffsets) {
		t.Errorf("Expected ErrUnorderedOffsets, got %v", err)
	}
	if _, _, err := UTF8ToUTF16Pair(text, units, 5, 1); !errors.Is(err, ErrUnorderedOffsets) {
		t.Errorf("Expected ErrUnorderedOffsets, got %v", err)
	}
}

func TestPair_MatchesSingle_Property(t *testing.T) {
	f := func(s string, x, y uint8) bool {
		if !utf8.ValidString(s) {
			return true
		}
		units := u16str.FromString(s).Str()
		first, second := int(x)%(len(s)+1), int(y)%(len(s)+1)
		if second < first {
			first, second = second, first
		}
		a, b, err := UTF8ToUTF16Pair(s, units, first, second)
		if err != nil {
			return false
		}
		return a == UTF8ToUTF16(s, units, first) && b == UTF8ToUTF16(s, units, second)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestRoundTrip_Property(t *testing.T) {
	f := func(s string) bool {
		if !utf8.ValidString(s) {
			return true
		}
		units := u16str.FromString(s).Str()
		for i := range s {
			if UTF16ToUTF8(units, s, UTF8ToUTF16(s, units, i)) != i {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func BenchmarkUTF16ToUTF8Pair(b *testing.B) {
	text := ""
	for i := 0; i < 200; i++ {
		text += "line with emoji 🎉 and 日本語\n"
	}
	units := u16str.FromString(text).Str()
	end := units.Len() - 1

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = UTF16ToUTF8Pair(units, text, end/2, end)
	}
}
