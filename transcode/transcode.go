package transcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/u16str"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ByteOrder selects how code units are laid out in bytes.
type ByteOrder uint8

const (
	// LittleEndian stores the low byte first (UTF-16LE).
	LittleEndian ByteOrder = iota
	// BigEndian stores the high byte first (UTF-16BE).
	BigEndian
)

// BOM (Byte Order Mark) constants
var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// String returns the IANA-style name of the byte order.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "utf-16le"
	case BigEndian:
		return "utf-16be"
	default:
		return "unknown"
	}
}

// ParseByteOrder parses a byte order name such as "le", "utf-16be".
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "little", "utf-16le", "utf16le":
		return LittleEndian, nil
	case "be", "big", "utf-16be", "utf16be":
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownByteOrder, s)
	}
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (o ByteOrder) binary() byteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (o ByteOrder) endianness() unicode.Endianness {
	if o == BigEndian {
		return unicode.BigEndian
	}
	return unicode.LittleEndian
}

func (o ByteOrder) bom() []byte {
	if o == BigEndian {
		return bomUTF16BE
	}
	return bomUTF16LE
}

// DetectByteOrder reports the byte order announced by a leading BOM.
func DetectByteOrder(content []byte) (ByteOrder, bool) {
	if bytes.HasPrefix(content, bomUTF16LE) {
		return LittleEndian, true
	}
	if bytes.HasPrefix(content, bomUTF16BE) {
		return BigEndian, true
	}
	return 0, false
}

// StripBOM removes a UTF-16 BOM from content if present.
// Returns the remaining content, the byte order and whether a BOM was found.
func StripBOM(content []byte) ([]byte, ByteOrder, bool) {
	order, ok := DetectByteOrder(content)
	if !ok {
		return content, 0, false
	}
	return content[2:], order, true
}

// Encode lays out the code units of s in the given byte order, optionally
// preceded by a BOM.
func Encode(s u16str.Str, order ByteOrder, withBOM bool) []byte {
	size := 2 * s.Len()
	if withBOM {
		size += 2
	}
	out := make([]byte, 0, size)
	if withBOM {
		out = append(out, order.bom()...)
	}
	bo := order.binary()
	for _, cu := range s {
		out = bo.AppendUint16(out, cu)
	}
	return out
}

// Decode reads code units from content. A leading BOM selects the byte
// order and is dropped; otherwise fallback is used. The byte order
// actually used is returned.
func Decode(content []byte, fallback ByteOrder) (*u16str.Buffer, ByteOrder, error) {
	body, order, ok := StripBOM(content)
	if !ok {
		order = fallback
	}
	if len(body)%2 != 0 {
		return nil, order, fmt.Errorf("%w: %d bytes", ErrOddLength, len(body))
	}

	bo := order.binary()
	units := make([]uint16, len(body)/2)
	for i := range units {
		units[i] = bo.Uint16(body[2*i:])
	}
	b := u16str.WithCapacity(len(units))
	b.PushStr(u16str.FromUTF16Unchecked(units))
	return b, order, nil
}

// textEncoding returns the x/text encoding for order.
func textEncoding(order ByteOrder, withBOM bool) encoding.Encoding {
	policy := unicode.IgnoreBOM
	if withBOM {
		policy = unicode.UseBOM
	}
	return unicode.UTF16(order.endianness(), policy)
}

// DecodeText converts UTF-16 bytes to UTF-8 text. A leading BOM (UTF-16
// or UTF-8) overrides fallback.
func DecodeText(content []byte, fallback ByteOrder) (string, error) {
	dec := unicode.BOMOverride(textEncoding(fallback, false).NewDecoder())
	out, _, err := transform.Bytes(dec, content)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", fallback, err)
	}
	return string(out), nil
}

// EncodeText converts UTF-8 text to UTF-16 bytes.
func EncodeText(text string, order ByteOrder, withBOM bool) ([]byte, error) {
	out, err := textEncoding(order, withBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", order, err)
	}
	return out, nil
}

// NewDecodingReader returns a reader yielding UTF-8 text decoded from the
// UTF-16 stream r.
func NewDecodingReader(r io.Reader, fallback ByteOrder) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(textEncoding(fallback, false).NewDecoder()))
}

// NewEncodingWriter returns a writer that encodes UTF-8 text to UTF-16
// before writing it to w. The caller must Close it to flush.
func NewEncodingWriter(w io.Writer, order ByteOrder, withBOM bool) io.WriteCloser {
	return transform.NewWriter(w, textEncoding(order, withBOM).NewEncoder())
}
