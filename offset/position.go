package offset

import (
	"fmt"
	"strings"

	"github.com/dshills/u16str"
)

// Encoding names the unit an LSP-style character column is counted in.
type Encoding uint8

const (
	// UTF8 counts columns in bytes.
	UTF8 Encoding = iota
	// UTF16 counts columns in UTF-16 code units (the LSP default).
	UTF16
	// UTF32 counts columns in code points.
	UTF32
)

// String returns the LSP name of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	case UTF32:
		return "utf-32"
	default:
		return "unknown"
	}
}

// ParseEncoding parses an LSP position encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16", "utf16":
		return UTF16, nil
	case "utf-32", "utf32":
		return UTF32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// Position is a 0-based line and character column.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// PositionConverter translates between absolute offsets and (line,
// character) positions in any of the supported column encodings.
type PositionConverter struct {
	text  string
	units *u16str.Buffer
	lines []lineInfo
}

// lineInfo stores the extent of one line in every encoding.
type lineInfo struct {
	byteOffset int // Byte offset of line start
	byteLen    int // Length in bytes, excluding the newline
	unitOffset int // Code-unit offset of line start
	unitLen    int // Length in code units
	runeLen    int // Length in code points
}

// NewPositionConverter creates a converter for the given UTF-8 content.
func NewPositionConverter(content string) *PositionConverter {
	pc := &PositionConverter{
		text:  content,
		units: u16str.FromString(content),
	}
	pc.buildLineIndex()
	return pc
}

// NewPositionConverterUTF16 creates a converter for UTF-16 content.
// Unpaired surrogates are carried over to the UTF-8 side as U+FFFD.
func NewPositionConverterUTF16(content u16str.Str) *PositionConverter {
	pc := &PositionConverter{
		text:  content.String(),
		units: content.Clone(),
	}
	pc.buildLineIndex()
	return pc
}

// buildLineIndex splits the content on '\n'.
func (pc *PositionConverter) buildLineIndex() {
	pc.lines = nil

	cur := lineInfo{}
	unitOff := 0
	for i, r := range pc.text {
		if r == '\n' {
			cur.byteLen = i - cur.byteOffset
			cur.unitLen = unitOff - cur.unitOffset
			pc.lines = append(pc.lines, cur)
			unitOff++
			cur = lineInfo{byteOffset: i + 1, unitOffset: unitOff}
			continue
		}
		cur.runeLen++
		if r > 0xFFFF {
			unitOff += 2
		} else {
			unitOff++
		}
	}

	// Handle last line (may not end with newline)
	cur.byteLen = len(pc.text) - cur.byteOffset
	cur.unitLen = unitOff - cur.unitOffset
	pc.lines = append(pc.lines, cur)
}

// LineCount returns the number of lines.
func (pc *PositionConverter) LineCount() int {
	return len(pc.lines)
}

// Text returns the UTF-8 content.
func (pc *PositionConverter) Text() string {
	return pc.text
}

// Units returns a view of the UTF-16 content.
func (pc *PositionConverter) Units() u16str.Str {
	return pc.units.Str()
}

// LineContent returns the content of a line (excluding newline).
func (pc *PositionConverter) LineContent(lineNum int) string {
	if lineNum < 0 || lineNum >= len(pc.lines) {
		return ""
	}
	line := pc.lines[lineNum]
	return pc.text[line.byteOffset : line.byteOffset+line.byteLen]
}

// LineUnits returns a view of a line's code units (excluding newline).
func (pc *PositionConverter) LineUnits(lineNum int) u16str.Str {
	if lineNum < 0 || lineNum >= len(pc.lines) {
		return nil
	}
	line := pc.lines[lineNum]
	return pc.units.Slice(u16str.Range{Start: line.unitOffset, End: line.unitOffset + line.unitLen})
}

// ByteOffsetToPosition converts a UTF-8 byte offset to a position whose
// character is counted in enc.
func (pc *PositionConverter) ByteOffsetToPosition(byteOffset int, enc Encoding) Position {
	if byteOffset <= 0 {
		return Position{}
	}

	lineNum := len(pc.lines) - 1
	for i, line := range pc.lines {
		if byteOffset <= line.byteOffset+line.byteLen {
			lineNum = i
			break
		}
	}

	line := pc.lines[lineNum]
	col := min(max(byteOffset-line.byteOffset, 0), line.byteLen)
	rank := rankUTF8(pc.LineContent(lineNum), col)
	return Position{Line: lineNum, Character: pc.columnOfRank(lineNum, rank, enc)}
}

// UnitOffsetToPosition converts a UTF-16 code-unit offset to a position
// whose character is counted in enc.
func (pc *PositionConverter) UnitOffsetToPosition(unitOffset int, enc Encoding) Position {
	if unitOffset <= 0 {
		return Position{}
	}

	lineNum := len(pc.lines) - 1
	for i, line := range pc.lines {
		if unitOffset <= line.unitOffset+line.unitLen {
			lineNum = i
			break
		}
	}

	line := pc.lines[lineNum]
	col := min(max(unitOffset-line.unitOffset, 0), line.unitLen)
	rank := rankUTF16(pc.LineUnits(lineNum), col)
	return Position{Line: lineNum, Character: pc.columnOfRank(lineNum, rank, enc)}
}

// PositionToByteOffset converts a position whose character is counted in
// enc to a UTF-8 byte offset. Positions past the end of a line clamp to
// the line end; lines past the end clamp to the end of the content.
func (pc *PositionConverter) PositionToByteOffset(pos Position, enc Encoding) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(pc.lines) {
		return len(pc.text)
	}
	rank := pc.rankOfColumn(pos.Line, pos.Character, enc)
	line := pc.lines[pos.Line]
	return line.byteOffset + byteOffsetOfRank(pc.LineContent(pos.Line), rank)
}

// PositionToUnitOffset converts a position whose character is counted in
// enc to a UTF-16 code-unit offset.
func (pc *PositionConverter) PositionToUnitOffset(pos Position, enc Encoding) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(pc.lines) {
		return pc.units.Len()
	}
	rank := pc.rankOfColumn(pos.Line, pos.Character, enc)
	line := pc.lines[pos.Line]
	return line.unitOffset + unitOffsetOfRank(pc.LineUnits(pos.Line), rank)
}

// ConvertPosition re-expresses pos, counted in from, as a position
// counted in to. The line is clamped to the content.
func (pc *PositionConverter) ConvertPosition(pos Position, from, to Encoding) Position {
	if pos.Line < 0 {
		return Position{}
	}
	if pos.Line >= len(pc.lines) {
		last := len(pc.lines) - 1
		return Position{Line: last, Character: pc.columnOfRank(last, pc.lines[last].runeLen, to)}
	}
	if from == to {
		return pos
	}
	rank := pc.rankOfColumn(pos.Line, pos.Character, from)
	return Position{Line: pos.Line, Character: pc.columnOfRank(pos.Line, rank, to)}
}

// rankOfColumn returns the number of code points before col on a line.
func (pc *PositionConverter) rankOfColumn(lineNum, col int, enc Encoding) int {
	switch enc {
	case UTF8:
		return rankUTF8(pc.LineContent(lineNum), col)
	case UTF16:
		return rankUTF16(pc.LineUnits(lineNum), col)
	default:
		return min(max(col, 0), pc.lines[lineNum].runeLen)
	}
}

// columnOfRank returns the column, counted in enc, of the code point
// with the given rank on a line.
func (pc *PositionConverter) columnOfRank(lineNum, rank int, enc Encoding) int {
	switch enc {
	case UTF8:
		return byteOffsetOfRank(pc.LineContent(lineNum), rank)
	case UTF16:
		return unitOffsetOfRank(pc.LineUnits(lineNum), rank)
	default:
		return min(rank, pc.lines[lineNum].runeLen)
	}
}
