// Package lspjson rewrites LSP position objects inside JSON payloads from
// one column encoding to another.
//
// Any JSON object carrying numeric "line" and "character" members is
// treated as a position, wherever it appears (params.position, range.start,
// nested edits and so on). Only the "character" member is rewritten; every
// other byte of the payload is preserved.
package lspjson

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/u16str/offset"
	"github.com/tidwall/gjson"
	"github.com/tidwall/match"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON indicates the payload is not valid JSON.
var ErrInvalidJSON = errors.New("invalid json payload")

// Found is a position object located in a payload.
type Found struct {
	Path     string // sjson/gjson path of the object
	Position offset.Position
}

// Stats summarizes a rewrite.
type Stats struct {
	Rewritten int // Positions whose character changed
	Unchanged int // Positions already correct in the target encoding
	Skipped   int // Positions whose line is outside the document
	Filtered  int // Positions excluded by the path filter
}

// Rewriter converts positions against a fixed document.
type Rewriter struct {
	pc     *offset.PositionConverter
	from   offset.Encoding
	to     offset.Encoding
	filter string
}

// NewRewriter creates a rewriter for positions into text.
func NewRewriter(text string, from, to offset.Encoding) *Rewriter {
	return &Rewriter{
		pc:   offset.NewPositionConverter(text),
		from: from,
		to:   to,
	}
}

// SetPathFilter restricts rewriting to positions whose path matches
// pattern, where '*' matches any run of characters and '?' a single one.
// An empty pattern matches everything.
func (rw *Rewriter) SetPathFilter(pattern string) {
	rw.filter = pattern
}

// Rewrite returns a copy of payload with every position converted.
func (rw *Rewriter) Rewrite(payload []byte) ([]byte, Stats, error) {
	var stats Stats

	found, err := Positions(payload)
	if err != nil {
		return nil, stats, err
	}

	out := payload
	for _, f := range found {
		if rw.filter != "" && !match.Match(f.Path, rw.filter) {
			stats.Filtered++
			continue
		}
		if f.Position.Line < 0 || f.Position.Line >= rw.pc.LineCount() {
			stats.Skipped++
			continue
		}
		conv := rw.pc.ConvertPosition(f.Position, rw.from, rw.to)
		if conv.Character == f.Position.Character {
			stats.Unchanged++
			continue
		}
		out, err = sjson.SetBytes(out, joinPath(f.Path, "character"), conv.Character)
		if err != nil {
			return nil, stats, fmt.Errorf("setting %s: %w", f.Path, err)
		}
		stats.Rewritten++
	}

	return out, stats, nil
}

// Rewrite is a convenience wrapper around NewRewriter(...).Rewrite.
func Rewrite(payload []byte, text string, from, to offset.Encoding) ([]byte, error) {
	out, _, err := NewRewriter(text, from, to).Rewrite(payload)
	return out, err
}

// Positions returns every position object in payload in document order.
func Positions(payload []byte) ([]Found, error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrInvalidJSON
	}
	var found []Found
	walk(gjson.ParseBytes(payload), "", &found)
	return found, nil
}

func walk(v gjson.Result, path string, found *[]Found) {
	switch {
	case v.IsObject():
		line, char := v.Get("line"), v.Get("character")
		if line.Type == gjson.Number && char.Type == gjson.Number {
			*found = append(*found, Found{
				Path:     path,
				Position: offset.Position{Line: int(line.Int()), Character: int(char.Int())},
			})
		}
		v.ForEach(func(key, value gjson.Result) bool {
			walk(value, joinPath(path, gjson.Escape(key.String())), found)
			return true
		})
	case v.IsArray():
		i := 0
		v.ForEach(func(_, value gjson.Result) bool {
			walk(value, joinPath(path, strconv.Itoa(i)), found)
			i++
			return true
		})
	}
}

func joinPath(base, part string) string {
	if base == "" {
		return part
	}
	return base + "." + part
}
