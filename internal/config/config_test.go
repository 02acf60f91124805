package config

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dshills/u16str/internal/config/layer"
	"github.com/dshills/u16str/internal/config/loader"
	"github.com/dshills/u16str/internal/logging"
	"github.com/dshills/u16str/offset"
	"github.com/dshills/u16str/transcode"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.ByteOrder != transcode.LittleEndian {
		t.Errorf("Expected little endian, got %s", c.ByteOrder)
	}
	if c.BOM {
		t.Error("Expected BOM off by default")
	}
	if c.PositionEncoding != offset.UTF16 {
		t.Errorf("Expected utf-16 positions, got %s", c.PositionEncoding)
	}
	if c.Format != FormatText {
		t.Errorf("Expected text format, got %s", c.Format)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	memfs := loader.FSAdapter{FS: fstest.MapFS{
		"u16.toml": {Data: []byte(`
[encoding]
byteOrder = "be"
bom = true
position = "utf-8"

[output]
format = "json"
`)},
	}}
	env := lookupFrom(map[string]string{
		"U16_FORMAT":    "yaml",
		"U16_LOG_LEVEL": "off",
	})

	c, err := Load(Options{Path: "u16.toml", FS: memfs, Lookup: env})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if c.ByteOrder != transcode.BigEndian {
		t.Errorf("Expected file byte order be, got %s", c.ByteOrder)
	}
	if !c.BOM {
		t.Error("Expected BOM from file")
	}
	if c.PositionEncoding != offset.UTF8 {
		t.Errorf("Expected utf-8 positions, got %s", c.PositionEncoding)
	}
	if c.Format != FormatYAML {
		t.Errorf("Expected env to override format, got %s", c.Format)
	}
	if c.LogLevel != logging.LevelOff {
		t.Errorf("Expected log level off, got %s", c.LogLevel)
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	memfs := loader.FSAdapter{FS: fstest.MapFS{
		"conf/u16.yaml": {Data: []byte("encoding:\n  bom: yes\n")},
	}}
	env := lookupFrom(map[string]string{ConfigFileEnv: "conf/u16.yaml"})

	c, err := Load(Options{FS: memfs, Lookup: env})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !c.BOM {
		t.Error("Expected BOM from $U16_CONFIG file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	memfs := loader.FSAdapter{FS: fstest.MapFS{}}
	c, err := Load(Options{Path: "absent.toml", FS: memfs, Lookup: lookupFrom(nil)})
	if err != nil {
		t.Fatalf("Expected missing file to be ignored, got %v", err)
	}
	if c.Format != FormatText {
		t.Errorf("Expected defaults, got format %s", c.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	memfs := loader.FSAdapter{FS: fstest.MapFS{
		"broken.toml":  {Data: []byte("[output\n")},
		"unknown.toml": {Data: []byte("[output]\ncolour = \"red\"\n")},
		"badtype.toml": {Data: []byte("[output]\nformat = 3\n")},
	}}

	tests := []struct {
		path string
		want error
	}{
		{"unknown.toml", ErrUnknownSetting},
		{"badtype.toml", ErrTypeMismatch},
	}
	for _, tt := range tests {
		_, err := Load(Options{Path: tt.path, FS: memfs, Lookup: lookupFrom(nil)})
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, err)
		}
	}

	_, err := Load(Options{Path: "broken.toml", FS: memfs, Lookup: lookupFrom(nil)})
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Expected *loader.ParseError, got %v", err)
	}

	_, err = Load(Options{FS: memfs, Lookup: lookupFrom(map[string]string{"U16_BYTE_ORDER": "middle"})})
	if !errors.Is(err, transcode.ErrUnknownByteOrder) {
		t.Errorf("Expected ErrUnknownByteOrder, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != KeyByteOrder {
		t.Errorf("Expected ValidationError for %s, got %v", KeyByteOrder, err)
	}
}

func TestSet(t *testing.T) {
	c := Default()

	tests := []struct {
		path  string
		value any
	}{
		{KeyByteOrder, "utf-16be"},
		{KeyBOM, "on"},
		{KeyPositionEncoding, "utf32"},
		{KeyFormat, "yml"},
		{KeyLogLevel, "debug"},
	}
	for _, tt := range tests {
		if err := c.Set(tt.path, tt.value); err != nil {
			t.Errorf("Set(%s, %v): unexpected error %v", tt.path, tt.value, err)
		}
	}

	want := Config{
		ByteOrder:        transcode.BigEndian,
		BOM:              true,
		PositionEncoding: offset.UTF32,
		Format:           FormatYAML,
		LogLevel:         logging.LevelDebug,
	}
	if *c != want {
		t.Errorf("Expected %+v, got %+v", want, *c)
	}

	if err := c.Set(KeyBOM, "maybe"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Expected ErrTypeMismatch, got %v", err)
	}
	if err := c.Set("output.width", "80"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Expected ErrUnknownSetting, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"byte order", func(c *Config) { c.ByteOrder = 7 }, KeyByteOrder},
		{"position", func(c *Config) { c.PositionEncoding = 9 }, KeyPositionEncoding},
		{"format", func(c *Config) { c.Format = 5 }, KeyFormat},
		{"level", func(c *Config) { c.LogLevel = -1 }, KeyLogLevel},
	}
	for _, tt := range tests {
		c := Default()
		tt.mutate(c)
		err := c.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if verr.Path != tt.path || !errors.Is(err, ErrValidationFailed) {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestMapRoundTrip(t *testing.T) {
	c := Default()
	c.ByteOrder = transcode.BigEndian
	c.BOM = true
	c.Format = FormatJSON

	got, err := FromMap(c.Map())
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if *got != *c {
		t.Errorf("Expected %+v, got %+v", *c, *got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(name)
		if err != nil || f.String() != name {
			t.Errorf("ParseFormat(%q) = %s, %v", name, f, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected ErrValidationFailed, got %v", err)
	}
}

func TestLayers_Origin(t *testing.T) {
	memfs := loader.FSAdapter{FS: fstest.MapFS{
		"u16.yaml": {Data: []byte("output:\n  format: json\n")},
	}}
	env := lookupFrom(map[string]string{"U16_BOM": "true"})

	m, err := Layers(Options{Path: "u16.yaml", FS: memfs, Lookup: env})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m.Add(layer.New(layer.SourceFlags, "", map[string]any{"logging": map[string]any{"level": "debug"}}))

	c, err := FromLayers(m)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Format != FormatJSON || !c.BOM || c.LogLevel != logging.LevelDebug {
		t.Errorf("Unexpected config %+v", *c)
	}

	origins := map[string]string{
		KeyFormat:    "file u16.yaml",
		KeyBOM:       "environment",
		KeyLogLevel:  "flags",
		KeyByteOrder: "defaults",
	}
	for path, want := range origins {
		if got := m.WhichLayer(path); got != want {
			t.Errorf("WhichLayer(%s) = %q, want %q", path, got, want)
		}
	}
}

func TestFromLayers_NamesBadLayer(t *testing.T) {
	m, err := Layers(Options{FS: loader.FSAdapter{FS: fstest.MapFS{}}, Lookup: lookupFrom(map[string]string{"U16_POSITION_ENCODING": "utf-7"})})
	if err != nil {
		t.Fatal(err)
	}
	_, err = FromLayers(m)
	if !errors.Is(err, offset.ErrUnknownEncoding) {
		t.Fatalf("Expected ErrUnknownEncoding, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "environment: ") {
		t.Errorf("Expected error to name the environment layer, got %q", err)
	}
}
