// Package config holds the settings of the u16 command.
//
// Settings are layered: built-in defaults, then a TOML or YAML file,
// then U16_ environment variables, then command-line flags. Each layer
// only overrides the keys it sets.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/dshills/u16str/internal/config/layer"
	"github.com/dshills/u16str/internal/config/loader"
	"github.com/dshills/u16str/internal/logging"
	"github.com/dshills/u16str/offset"
	"github.com/dshills/u16str/transcode"
)

// Setting paths.
const (
	KeyByteOrder        = "encoding.byteOrder"
	KeyBOM              = "encoding.bom"
	KeyPositionEncoding = "encoding.position"
	KeyFormat           = "output.format"
	KeyLogLevel         = "logging.level"
)

// ConfigFileEnv names the variable consulted when no file is given.
const ConfigFileEnv = loader.DefaultEnvPrefix + "CONFIG"

// Format selects how command results are rendered.
type Format uint8

const (
	// FormatText is human-readable lines.
	FormatText Format = iota
	// FormatJSON is one JSON document.
	FormatJSON
	// FormatYAML is one YAML document.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrValidationFailed, s)
	}
}

// Config is the effective u16 configuration.
type Config struct {
	// ByteOrder is used when encoding, and when decoding input without a BOM.
	ByteOrder transcode.ByteOrder
	// BOM makes encode write a byte order mark.
	BOM bool
	// PositionEncoding is the column unit of positions not given explicitly.
	PositionEncoding offset.Encoding
	// Format is the output format.
	Format Format
	// LogLevel is the minimum level logged to stderr.
	LogLevel logging.Level
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ByteOrder:        transcode.LittleEndian,
		BOM:              false,
		PositionEncoding: offset.UTF16,
		Format:           FormatText,
		LogLevel:         logging.LevelWarn,
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// Path is the config file. Empty means $U16_CONFIG, and no file if
	// that is unset too.
	Path string
	// FS reads the config file. Nil means the OS file system.
	FS loader.FileSystem
	// Lookup reads environment variables. Nil means os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds the configuration from defaults, the config file and the
// environment. A missing config file is not an error.
func Load(opts Options) (*Config, error) {
	m, err := Layers(opts)
	if err != nil {
		return nil, err
	}
	return FromLayers(m)
}

// Layers reads the default, file and environment layers without
// interpreting them. Callers may add a flags layer before FromLayers.
func Layers(opts Options) (*layer.Manager, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	m := layer.NewManager()
	m.Add(layer.New(layer.SourceDefaults, "", Default().Map()))

	path := opts.Path
	if path == "" {
		path, _ = lookup(ConfigFileEnv)
	}
	if path != "" {
		data, err := loader.NewFileLoaderWithFS(fsys, path).Load()
		if err != nil {
			return nil, err
		}
		if data != nil {
			m.Add(layer.New(layer.SourceFile, path, data))
		}
	}

	data, err := loader.NewEnvLoaderWithLookup(loader.DefaultEnvPrefix, lookup).Load()
	if err != nil {
		return nil, err
	}
	m.Add(layer.New(layer.SourceEnv, "", data))

	return m, nil
}

// FromLayers interprets the merged layers. A bad value is reported with
// the layer that set it.
func FromLayers(m *layer.Manager) (*Config, error) {
	cfg, err := FromMap(m.Merge())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("%s: %w", m.WhichLayer(verr.Path), err)
		}
		return nil, err
	}
	return cfg, nil
}

// FromMap returns the defaults overridden by data.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	if err := cfg.Apply(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overrides every setting present in data, a nested map as
// produced by the loaders. Keys are applied in sorted order and the
// first failure is returned.
func (c *Config) Apply(data map[string]any) error {
	flat := layer.FlattenMap(data)
	for _, path := range slices.Sorted(maps.Keys(flat)) {
		if err := c.Set(path, flat[path]); err != nil {
			return err
		}
	}
	return nil
}

// Set assigns one setting. Enumerated settings accept their names as
// strings; KeyBOM accepts a bool or a boolean string.
func (c *Config) Set(path string, value any) error {
	switch path {
	case KeyBOM:
		b, err := asBool(path, value)
		if err != nil {
			return err
		}
		c.BOM = b
		return nil
	case KeyByteOrder, KeyPositionEncoding, KeyFormat, KeyLogLevel:
	default:
		return &ValidationError{Path: path, Value: value, Err: ErrUnknownSetting}
	}

	s, ok := value.(string)
	if !ok {
		return &ValidationError{Path: path, Value: value, Err: fmt.Errorf("%w: expected string, got %T", ErrTypeMismatch, value)}
	}

	var err error
	switch path {
	case KeyByteOrder:
		c.ByteOrder, err = transcode.ParseByteOrder(s)
	case KeyPositionEncoding:
		c.PositionEncoding, err = offset.ParseEncoding(s)
	case KeyFormat:
		c.Format, err = ParseFormat(s)
	case KeyLogLevel:
		c.LogLevel, err = logging.ParseLevel(s)
	}
	if err != nil {
		return &ValidationError{Path: path, Value: value, Err: err}
	}
	return nil
}

// Validate checks that every enumerated setting holds a known value.
func (c *Config) Validate() error {
	switch {
	case c.ByteOrder > transcode.BigEndian:
		return &ValidationError{Path: KeyByteOrder, Value: c.ByteOrder, Err: ErrValidationFailed}
	case c.PositionEncoding > offset.UTF32:
		return &ValidationError{Path: KeyPositionEncoding, Value: c.PositionEncoding, Err: ErrValidationFailed}
	case c.Format > FormatYAML:
		return &ValidationError{Path: KeyFormat, Value: c.Format, Err: ErrValidationFailed}
	case c.LogLevel < logging.LevelDebug || c.LogLevel > logging.LevelOff:
		return &ValidationError{Path: KeyLogLevel, Value: c.LogLevel, Err: ErrValidationFailed}
	}
	return nil
}

// Map returns the configuration as a nested map using setting names.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"encoding": map[string]any{
			"byteOrder": c.ByteOrder.String(),
			"bom":       c.BOM,
			"position":  c.PositionEncoding.String(),
		},
		"output": map[string]any{
			"format": c.Format.String(),
		},
		"logging": map[string]any{
			"level": strings.ToLower(c.LogLevel.String()),
		},
	}
}

func asBool(path string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return false, &ValidationError{Path: path, Value: value, Err: fmt.Errorf("%w: expected bool, got %T", ErrTypeMismatch, value)}
}
