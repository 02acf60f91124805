package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dshills/u16str"
	"github.com/dshills/u16str/codec"
	"github.com/dshills/u16str/internal/config/layer"
	"github.com/dshills/u16str/lspjson"
	"github.com/dshills/u16str/offset"
	"github.com/dshills/u16str/transcode"
	"github.com/pelletier/go-toml/v2"
	"github.com/rivo/uniseg"
)

var errTerminal = errors.New("refusing to write binary output to a terminal (use -force)")

func (c *cli) encode(args []string) error {
	fs := c.flags("encode", "[file]")
	order := fs.String("byte-order", c.cfg.ByteOrder.String(), "Byte order of the output (le, be)")
	bom := fs.Bool("bom", c.cfg.BOM, "Write a byte order mark")
	stream := fs.Bool("stream", false, "Transcode incrementally instead of reading the whole input")
	force := fs.Bool("force", false, "Write binary output even to a terminal")
	if err := parse(fs, args); err != nil {
		return err
	}

	bo, err := transcode.ParseByteOrder(*order)
	if err != nil {
		return usageError("%v", err)
	}
	if isTerminal(c.stdout) && !*force {
		return errTerminal
	}

	if *stream {
		in, err := c.openInput(fs.Arg(0))
		if err != nil {
			return err
		}
		defer in.Close()
		w := transcode.NewEncodingWriter(c.stdout, bo, *bom)
		n, err := io.Copy(w, in)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", bo, err)
		}
		c.log.WithFields(map[string]any{"bytes": n, "order": bo}).Debug("streamed")
		return w.Close()
	}

	data, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		c.log.Warn("input is not valid UTF-8; invalid bytes are encoded as U+FFFD")
	}
	buf := u16str.FromString(string(data))
	out := transcode.Encode(buf.Str(), bo, *bom)
	c.log.WithFields(map[string]any{"bytes": len(data), "units": buf.Len(), "order": bo}).Debug("encoded")
	_, err = c.stdout.Write(out)
	return err
}

func (c *cli) decode(args []string) error {
	fs := c.flags("decode", "[file]")
	order := fs.String("byte-order", c.cfg.ByteOrder.String(), "Byte order used when the input has no BOM (le, be)")
	strict := fs.Bool("strict", false, "Fail on unpaired surrogates instead of writing U+FFFD")
	stream := fs.Bool("stream", false, "Transcode incrementally instead of reading the whole input")
	if err := parse(fs, args); err != nil {
		return err
	}

	bo, err := transcode.ParseByteOrder(*order)
	if err != nil {
		return usageError("%v", err)
	}
	if *stream && *strict {
		return usageError("-stream and -strict cannot be combined")
	}

	if *stream {
		in, err := c.openInput(fs.Arg(0))
		if err != nil {
			return err
		}
		defer in.Close()
		if _, err := io.Copy(c.stdout, transcode.NewDecodingReader(in, bo)); err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		return nil
	}

	data, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	buf, used, err := transcode.Decode(data, bo)
	if err != nil {
		return err
	}
	if s := buf.Str(); !s.Valid() {
		if *strict {
			_, err := u16str.FromUTF16(s.Units())
			return err
		}
		c.log.Warn("input contains unpaired surrogates; writing U+FFFD")
	}
	c.log.WithFields(map[string]any{"bytes": len(data), "units": buf.Len(), "order": used}).Debug("decoded")
	_, err = io.WriteString(c.stdout, buf.String())
	return err
}

type charInfo struct {
	Unit      int    `json:"unit" yaml:"unit"`
	Byte      int    `json:"byte" yaml:"byte"`
	CodePoint string `json:"codePoint" yaml:"codePoint"`
	UTF16     string `json:"utf16" yaml:"utf16"`
	Width     int    `json:"width" yaml:"width"`
	Unpaired  bool   `json:"unpaired,omitempty" yaml:"unpaired,omitempty"`

	r rune
}

type inspectReport struct {
	CodePoints int        `json:"codePoints" yaml:"codePoints"`
	Units      int        `json:"units" yaml:"units"`
	Bytes      int        `json:"bytes" yaml:"bytes"`
	Valid      bool       `json:"valid" yaml:"valid"`
	Chars      []charInfo `json:"chars" yaml:"chars"`
}

func (c *cli) inspect(args []string) error {
	fs := c.flags("inspect", "[file]")
	text := fs.String("text", "", "Inspect this text instead of a file")
	raw := fs.Bool("utf16", false, "Input is UTF-16 bytes rather than UTF-8 text")
	order := fs.String("byte-order", c.cfg.ByteOrder.String(), "Byte order of -utf16 input without a BOM")
	if err := parse(fs, args); err != nil {
		return err
	}

	var s u16str.Str
	switch {
	case *text != "":
		s = u16str.FromString(*text).Str()
	case *raw:
		bo, err := transcode.ParseByteOrder(*order)
		if err != nil {
			return usageError("%v", err)
		}
		data, err := c.readInput(fs.Arg(0))
		if err != nil {
			return err
		}
		buf, _, err := transcode.Decode(data, bo)
		if err != nil {
			return err
		}
		s = buf.Str()
	default:
		data, err := c.readInput(fs.Arg(0))
		if err != nil {
			return err
		}
		s = u16str.FromString(string(data)).Str()
	}

	report := describe(s)
	return c.render(report, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "UNIT\tBYTE\tCODE POINT\tUTF-16\tWIDTH\tCHAR")
		for _, ci := range report.Chars {
			char := strconv.QuoteRune(ci.r)
			if ci.Unpaired {
				char = "unpaired"
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d\t%s\n", ci.Unit, ci.Byte, ci.CodePoint, ci.UTF16, ci.Width, char)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d code points, %d UTF-16 units, %d UTF-8 bytes\n", report.CodePoints, report.Units, report.Bytes)
		return err
	})
}

// describe lists every code point of s with its offsets in both
// encodings. Unpaired surrogates count as U+FFFD on the UTF-8 side, the
// way Str.String writes them.
func describe(s u16str.Str) inspectReport {
	report := inspectReport{Units: s.Len(), Valid: s.Valid(), Chars: []charInfo{}}
	byteOff := 0
	for it := s.CharIndices(); it.Next(); {
		i, r := it.Index(), it.Rune()
		_, size := s.DecodeRuneAt(i)
		unpaired := size == 1 && codec.IsSurrogate(s.At(i))

		hex := make([]string, 0, size)
		for _, cu := range s.Slice(u16str.Range{Start: i, End: i + size}).CodeUnits() {
			hex = append(hex, fmt.Sprintf("%04X", cu))
		}

		shown := r
		if unpaired {
			shown = utf8.RuneError
		}
		report.Chars = append(report.Chars, charInfo{
			Unit:      i,
			Byte:      byteOff,
			CodePoint: fmt.Sprintf("U+%04X", r),
			UTF16:     strings.Join(hex, " "),
			Width:     uniseg.StringWidth(string(shown)),
			Unpaired:  unpaired,
			r:         shown,
		})
		byteOff += utf8.RuneLen(shown)
	}
	report.CodePoints = len(report.Chars)
	report.Bytes = byteOff
	return report
}

type mapReport struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Offsets []int  `json:"offsets" yaml:"offsets"`
	Result  []int  `json:"result" yaml:"result"`
}

func (c *cli) mapOffsets(args []string) error {
	fs := c.flags("map", "offset [offset]")
	to := fs.String("to", "utf-16", "Encoding to convert the offsets to (utf-8, utf-16)")
	text := fs.String("text", "", "Text the offsets index into")
	file := fs.String("file", "", "File holding the text (default: stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		return usageError("expected one or two offsets, got %d", fs.NArg())
	}
	offs := make([]int, fs.NArg())
	for i, arg := range fs.Args() {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return usageError("invalid offset %q", arg)
		}
		offs[i] = n
	}

	target, err := offset.ParseEncoding(*to)
	if err != nil || target == offset.UTF32 {
		return usageError("-to must be utf-8 or utf-16, got %q", *to)
	}
	source := offset.UTF8
	if target == offset.UTF8 {
		source = offset.UTF16
	}

	content := *text
	if content == "" {
		data, err := c.readInput(*file)
		if err != nil {
			return err
		}
		content = string(data)
	}
	units := u16str.FromString(content).Str()

	report := mapReport{From: source.String(), To: target.String(), Offsets: offs}
	switch {
	case len(offs) == 1 && target == offset.UTF16:
		report.Result = []int{offset.UTF8ToUTF16(content, units, offs[0])}
	case len(offs) == 1:
		report.Result = []int{offset.UTF16ToUTF8(units, content, offs[0])}
	default:
		var a, b int
		if target == offset.UTF16 {
			a, b, err = offset.UTF8ToUTF16Pair(content, units, offs[0], offs[1])
		} else {
			a, b, err = offset.UTF16ToUTF8Pair(units, content, offs[0], offs[1])
		}
		if err != nil {
			return err
		}
		report.Result = []int{a, b}
	}
	c.log.WithFields(map[string]any{"from": source, "to": target}).Debug("mapped %v to %v", offs, report.Result)

	return c.render(report, func(w io.Writer) error {
		parts := make([]string, len(report.Result))
		for i, n := range report.Result {
			parts[i] = strconv.Itoa(n)
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, " "))
		return err
	})
}

func (c *cli) rewrite(args []string) error {
	fs := c.flags("rewrite", "[payload]")
	from := fs.String("from", c.cfg.PositionEncoding.String(), "Position encoding of the payload (utf-8, utf-16, utf-32)")
	to := fs.String("to", "", "Position encoding to convert to (default utf-8, or utf-16 when -from is utf-8)")
	textFile := fs.String("text-file", "", "Document the positions refer to (required)")
	only := fs.String("only", "", "Only rewrite positions whose JSON path matches this pattern")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *textFile == "" {
		return usageError("-text-file is required")
	}
	fromEnc, err := offset.ParseEncoding(*from)
	if err != nil {
		return usageError("%v", err)
	}
	toEnc := offset.UTF8
	if fromEnc == offset.UTF8 {
		toEnc = offset.UTF16
	}
	if *to != "" {
		if toEnc, err = offset.ParseEncoding(*to); err != nil {
			return usageError("%v", err)
		}
	}

	text, err := os.ReadFile(*textFile)
	if err != nil {
		return err
	}
	payload, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}

	rw := lspjson.NewRewriter(string(text), fromEnc, toEnc)
	rw.SetPathFilter(*only)
	out, stats, err := rw.Rewrite(payload)
	if err != nil {
		return err
	}
	c.log.WithFields(map[string]any{
		"rewritten": stats.Rewritten,
		"unchanged": stats.Unchanged,
		"skipped":   stats.Skipped,
		"filtered":  stats.Filtered,
	}).Info("rewrote positions %s -> %s", fromEnc, toEnc)
	if stats.Skipped > 0 {
		c.log.Warn("%d positions reference lines outside %s", stats.Skipped, *textFile)
	}

	_, err = c.stdout.Write(out)
	return err
}

type settingOrigin struct {
	Setting string `json:"setting" yaml:"setting"`
	Value   any    `json:"value" yaml:"value"`
	Layer   string `json:"layer" yaml:"layer"`
}

func (c *cli) showConfig(args []string) error {
	fs := c.flags("config", "")
	origin := fs.Bool("origin", false, "Show which layer set each value")
	if err := parse(fs, args); err != nil {
		return err
	}

	settings := c.cfg.Map()
	if !*origin {
		return c.render(settings, func(w io.Writer) error {
			return toml.NewEncoder(w).Encode(settings)
		})
	}

	flat := layer.FlattenMap(settings)
	rows := make([]settingOrigin, 0, len(flat))
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		rows = append(rows, settingOrigin{Setting: key, Value: flat[key], Layer: c.layers.WhichLayer(key)})
	}
	return c.render(rows, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%v\t%s\n", r.Setting, r.Value, r.Layer)
		}
		return tw.Flush()
	})
}
