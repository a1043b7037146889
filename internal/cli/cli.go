// Package cli implements the butterfly command-line interface.
//
// This package provides commands for parsing pasted spreadsheet data,
// computing butterfly chart geometry, encoding it for renderers, and
// serving the same pipeline over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Ingest tabular text into a dataset
//   - layout: Compute frame geometry and write a layout document
//   - render: Encode a chart as json, yaml, csv or a terminal table
//   - inspect: Browse rows, signed values and label anchors interactively
//   - serve: Run the HTTP API
//   - cache, config: Manage the source cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/butterfly/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/internal/config"
	"github.com/matzehuels/butterfly/pkg/buildinfo"
	"github.com/matzehuels/butterfly/pkg/cache"
	"github.com/matzehuels/butterfly/pkg/httputil"
	"github.com/matzehuels/butterfly/pkg/pipeline"
	"github.com/matzehuels/butterfly/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "butterfly"

	// annotationNoConfig marks commands that run without loading the
	// config file, such as "config init".
	annotationNoConfig = "butterfly/no-config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Butterfly turns pasted spreadsheet data into diverging bar charts",
		Long: `Butterfly ingests tabular text pasted from a spreadsheet (tab- or
comma-separated, with or without a header) and computes the geometry of a
butterfly chart: two series diverging from a shared zero axis.

Outputs are structured data (json, yaml, csv, terminal tables) for a
renderer to draw; butterfly never draws pixels itself.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoConfig] != "" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/butterfly/config.toml)")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exampleCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.Client = httputil.NewClient(store,
		httputil.WithKeyer(runner.Keyer),
		httputil.WithTTL(c.Config.Cache.TTL),
		httputil.WithUserAgent(appName+"/"+buildinfo.Version))
	return runner, nil
}

// newCache opens the configured backend. A backend that cannot be reached
// degrades to no caching with a warning; the cache only saves refetches.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, c.Config.CacheConfig())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config.
func (c *CLI) baseOptions() pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger
	opts.Stdin = c.stdin
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}

// inputArg returns the single positional input, defaulting to stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func (c *CLI) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

func writeOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// fetchSpinner shows a spinner while a URL source downloads. It returns the
// function that stops it; for local inputs that function does nothing.
func fetchSpinner(ctx context.Context, input string) func() {
	if source.Detect(input) != source.KindURL {
		return func() {}
	}
	s := newSpinnerWithContext(ctx, "Fetching "+input)
	s.Start()
	return s.Stop
}
