// Package main is the entry point for the u16 command, a UTF-16 text
// toolbox: transcoding, inspection, offset mapping and LSP position
// rewriting.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/u16str/internal/config"
	"github.com/dshills/u16str/internal/config/layer"
	"github.com/dshills/u16str/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors caused by bad arguments; they exit with status 2.
var errUsage = errors.New("usage")

func main() {
	c := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		lookup: os.LookupEnv,
	}
	os.Exit(c.run(os.Args[1:]))
}

// cli holds the process streams so commands can be run in tests.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lookup func(string) (string, bool)

	cfg    *config.Config
	layers *layer.Manager
	log    *logging.Logger
}

type command struct {
	name    string
	summary string
	run     func(c *cli, args []string) error
}

var commands = []command{
	{"encode", "Convert UTF-8 text to UTF-16 bytes", (*cli).encode},
	{"decode", "Convert UTF-16 bytes to UTF-8 text", (*cli).decode},
	{"inspect", "List code points with their UTF-16 and UTF-8 offsets", (*cli).inspect},
	{"map", "Translate offsets between UTF-8 and UTF-16", (*cli).mapOffsets},
	{"rewrite", "Convert LSP positions in a JSON payload", (*cli).rewrite},
	{"config", "Print the effective configuration", (*cli).showConfig},
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func (c *cli) run(args []string) int {
	var configPath, format, logLevel string
	var showVersion bool

	fs := flag.NewFlagSet("u16", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&format, "format", "", "Output format (text, json, yaml)")
	fs.StringVar(&format, "f", "", "Output format (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.Usage = func() { c.usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(c.stdout, "u16 %s\n", version)
		fmt.Fprintf(c.stdout, "Commit: %s\n", commit)
		fmt.Fprintf(c.stdout, "Built: %s\n", date)
		return 0
	}

	// Flags form the top configuration layer.
	flags := map[string]any{}
	if format != "" {
		if _, err := config.ParseFormat(format); err != nil {
			fmt.Fprintf(c.stderr, "Error: -format: %v\n", err)
			return 2
		}
		layer.SetByPath(flags, config.KeyFormat, format)
	}
	if logLevel != "" {
		if _, err := logging.ParseLevel(logLevel); err != nil {
			fmt.Fprintf(c.stderr, "Error: -log-level: %v\n", err)
			return 2
		}
		layer.SetByPath(flags, config.KeyLogLevel, logLevel)
	}

	layers, err := config.Layers(config.Options{Path: configPath, Lookup: c.lookup})
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: loading config: %v\n", err)
		return 1
	}
	layers.Add(layer.New(layer.SourceFlags, "", flags))

	cfg, err := config.FromLayers(layers)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: loading config: %v\n", err)
		return 1
	}
	c.cfg = cfg
	c.layers = layers
	c.log = logging.New(logging.Config{Level: cfg.LogLevel, Output: c.stderr, Prefix: "u16"})

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cmd, ok := findCommand(fs.Arg(0))
	if !ok {
		fmt.Fprintf(c.stderr, "Error: unknown command %q\n", fs.Arg(0))
		return 2
	}

	c.log = c.log.WithField("command", cmd.name)
	c.log.Debug("config %v", cfg.Map())

	if err := cmd.run(c, fs.Args()[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			if err != errUsage {
				fmt.Fprintf(c.stderr, "Error: %v\n", err)
			}
			return 2
		}
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) usage(fs *flag.FlagSet) {
	fmt.Fprintf(c.stderr, "u16 - UTF-16 text toolbox\n\n")
	fmt.Fprintf(c.stderr, "Usage: u16 [options] <command> [command options] [args]\n\n")
	fmt.Fprintf(c.stderr, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(c.stderr, "  %-8s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(c.stderr, "\nOptions:\n")
	fs.PrintDefaults()
	fmt.Fprintf(c.stderr, "\nExamples:\n")
	fmt.Fprintf(c.stderr, "  u16 encode -bom notes.txt > notes.utf16\n")
	fmt.Fprintf(c.stderr, "  u16 -f json inspect notes.txt\n")
	fmt.Fprintf(c.stderr, "  u16 map -to utf16 -text 'a😀b' 1 5\n")
	fmt.Fprintf(c.stderr, "  u16 rewrite -text-file main.go -from utf-16 -to utf-8 request.json\n")
}

// flags returns a flag set for a subcommand.
func (c *cli) flags(cmd, args string) *flag.FlagSet {
	fs := flag.NewFlagSet("u16 "+cmd, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: u16 %s [options] %s\n\nOptions:\n", cmd, args)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses subcommand flags. The flag package has already reported
// any error, so a bare errUsage is returned.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
