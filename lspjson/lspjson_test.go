package lspjson

import (
	"errors"
	"testing"

	"github.com/dshills/u16str/offset"
	"github.com/tidwall/gjson"
)

const doc = "a😀b\nplain\n日本語"

func TestPositions(t *testing.T) {
	payload := []byte(`{
		"jsonrpc": "2.0",
		"params": {
			"position": {"line": 0, "character": 3},
			"edits": [
				{"range": {"start": {"line": 1, "character": 0}, "end": {"line": 1, "character": 5}}},
				{"note": "not a position", "line": "0", "character": 1}
			]
		}
	}`)

	found, err := Positions(payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"params.position",
		"params.edits.0.range.start",
		"params.edits.0.range.end",
	}
	if len(found) != len(want) {
		t.Fatalf("Expected %d positions, got %d: %+v", len(want), len(found), found)
	}
	for i, p := range want {
		if found[i].Path != p {
			t.Errorf("Position %d: expected path %q, got %q", i, p, found[i].Path)
		}
	}
	if found[0].Position != (offset.Position{Line: 0, Character: 3}) {
		t.Errorf("Unexpected first position %s", found[0].Position)
	}
}

func TestRewrite_UTF16ToUTF8(t *testing.T) {
	payload := []byte(`{"range":{"start":{"line":0,"character":1},"end":{"line":0,"character":3}},"other":{"line":2,"character":2}}`)

	out, stats, err := NewRewriter(doc, offset.UTF16, offset.UTF8).Rewrite(payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	checks := map[string]int64{
		"range.start.character": 1,
		"range.end.character":   5,
		"other.character":       6,
	}
	for path, want := range checks {
		if got := gjson.GetBytes(out, path).Int(); got != want {
			t.Errorf("%s: expected %d, got %d", path, want, got)
		}
	}
	if stats.Rewritten != 2 || stats.Unchanged != 1 || stats.Skipped != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestRewrite_RoundTrip(t *testing.T) {
	payload := []byte(`[{"line":0,"character":3},{"line":2,"character":2}]`)

	there, err := Rewrite(payload, doc, offset.UTF16, offset.UTF8)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Rewrite(there, doc, offset.UTF8, offset.UTF16)
	if err != nil {
		t.Fatal(err)
	}
	if string(back) != string(payload) {
		t.Errorf("Expected %s, got %s", payload, back)
	}
}

func TestRewrite_SkipsMissingLines(t *testing.T) {
	payload := []byte(`{"line":40,"character":3}`)
	out, stats, err := NewRewriter(doc, offset.UTF16, offset.UTF8).Rewrite(payload)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Expected 1 skipped, got %+v", stats)
	}
	if string(out) != string(payload) {
		t.Errorf("Expected payload untouched, got %s", out)
	}
}

func TestRewrite_EscapedKeys(t *testing.T) {
	payload := []byte(`{"file.go":{"line":0,"character":3}}`)
	out, err := Rewrite(payload, doc, offset.UTF16, offset.UTF32)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, `file\.go.character`).Int(); got != 2 {
		t.Errorf("Expected 2, got %d (%s)", got, out)
	}
}

func TestRewrite_InvalidJSON(t *testing.T) {
	if _, err := Rewrite([]byte(`{"line":`), doc, offset.UTF16, offset.UTF8); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Expected ErrInvalidJSON, got %v", err)
	}
}

func TestRewrite_PathFilter(t *testing.T) {
	payload := []byte(`{"range":{"start":{"line":0,"character":3},"end":{"line":0,"character":4}},"position":{"line":0,"character":3}}`)

	rw := NewRewriter(doc, offset.UTF16, offset.UTF8)
	rw.SetPathFilter("range.*")
	out, stats, err := rw.Rewrite(payload)
	if err != nil {
		t.Fatal(err)
	}

	if got := gjson.GetBytes(out, "range.start.character").Int(); got != 5 {
		t.Errorf("Expected range.start rewritten to 5, got %d", got)
	}
	if got := gjson.GetBytes(out, "position.character").Int(); got != 3 {
		t.Errorf("Expected position left at 3, got %d", got)
	}
	if stats.Filtered != 1 || stats.Rewritten != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}
