package codec

import "unicode/utf8"

const (
	// MaxBMP is the largest code point stored in a single code unit.
	MaxBMP = 0xFFFF

	surrHigh = 0xD800
	surrLow  = 0xDC00
	surrEnd  = 0xE000
	surrBase = 0x10000

	highTag = 0b110110
	lowTag  = 0b110111
	tenBits = 0b1111111111
)

// IsHighSurrogate reports whether cu is a high (leading) surrogate.
func IsHighSurrogate(cu uint16) bool {
	return cu>>10 == highTag
}

// IsLowSurrogate reports whether cu is a low (trailing) surrogate.
func IsLowSurrogate(cu uint16) bool {
	return cu>>10 == lowTag
}

// IsSurrogate reports whether cu is either half of a surrogate pair.
func IsSurrogate(cu uint16) bool {
	return surrHigh <= cu && cu < surrEnd
}

// RuneLen returns the number of code units EncodeRune produces for r.
func RuneLen(r rune) int {
	if uint32(sanitize(r))>>16 == 0 {
		return 1
	}
	return 2
}

// EncodeRune returns the one or two code units encoding r.
//
// Values that fit in 16 bits are cast directly, including lone surrogate
// values. Negative runes and runes above utf8.MaxRune cannot be expressed
// and are encoded as utf8.RuneError.
func EncodeRune(r rune) []uint16 {
	return AppendRune(make([]uint16, 0, 2), r)
}

// AppendRune appends the encoding of r to dst and returns the extended slice.
func AppendRune(dst []uint16, r rune) []uint16 {
	val := uint32(sanitize(r))
	if val>>16 == 0 {
		return append(dst, uint16(val))
	}
	val -= surrBase
	hi := (val >> 10) + surrHigh
	lo := (val & tenBits) + surrLow
	return append(dst, uint16(hi), uint16(lo))
}

// DecodePair combines a high and a low surrogate into a code point.
//
// The inputs are not checked. Arithmetic is carried out on the raw values
// (wrapping on underflow) and any result that is not a valid scalar value
// yields U+0000.
func DecodePair(hi, lo uint16) rune {
	h := uint32(hi-surrHigh) * 0x400
	l := uint32(lo - surrLow)
	r := rune(h + l + surrBase)
	if !utf8.ValidRune(r) {
		return 0
	}
	return r
}

// DecodeUnit reinterprets a single code unit as a code point. Lone
// surrogates keep their numeric value.
func DecodeUnit(cu uint16) rune {
	return rune(cu)
}

func sanitize(r rune) rune {
	if r < 0 || r > utf8.MaxRune {
		return utf8.RuneError
	}
	return r
}
