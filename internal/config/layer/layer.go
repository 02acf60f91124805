// Package layer stacks configuration sources so that later sources
// override earlier ones and every effective value can be traced back to
// the source that set it.
package layer

// Source indicates where a configuration layer came from. Sources are
// ordered by precedence: a higher Source overrides a lower one.
type Source uint8

const (
	// SourceDefaults represents built-in default configuration.
	SourceDefaults Source = iota
	// SourceFile represents a TOML or YAML config file.
	SourceFile
	// SourceEnv represents U16_ environment variables.
	SourceEnv
	// SourceFlags represents command-line flags.
	SourceFlags
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Layer is one configuration source.
type Layer struct {
	// Source determines the layer's precedence.
	Source Source
	// Path is the file the layer was read from, if any.
	Path string
	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// New creates a layer. A nil data map is replaced by an empty one.
func New(source Source, path string, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{Source: source, Path: path, Data: data}
}

// Name describes the layer for messages, including its file if any.
func (l *Layer) Name() string {
	if l.Path != "" {
		return l.Source.String() + " " + l.Path
	}
	return l.Source.String()
}
