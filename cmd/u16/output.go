package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dshills/u16str/internal/config"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// render writes v in the configured format. text renders the plain
// form.
func (c *cli) render(v any, text func(w io.Writer) error) error {
	switch c.cfg.Format {
	case config.FormatJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(pretty.Pretty(data))
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(c.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(c.stdout)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openInput opens path, or stdin for "" and "-".
func (c *cli) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(c.stdin), nil
	}
	return os.Open(path)
}

func (c *cli) readInput(path string) ([]byte, error) {
	r, err := c.openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
