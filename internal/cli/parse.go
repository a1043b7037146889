package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/sink"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	source sourceFlags
	parse  parseFlags
	output string // output file path (stdout if empty or "-")
	format string // dataset encoding, defaults to the config format
}

// parseCommand creates the parse command, which ingests tabular text and
// prints the resulting dataset.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Ingest tabular text into a dataset",
		Long: `Ingest tabular text into a dataset.

The input is a file, a .xlsx workbook, an http(s) URL, or "-" for stdin
(the default). Rows are split on tabs or commas; a first row whose value
columns are not numeric is treated as the header and names the two series.

Examples:
  pbpaste | butterfly parse
  butterfly parse sales.csv -f yaml
  butterfly parse report.xlsx --sheet Q3 -f csv -o q3.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, inputArg(args), &opts)
		},
	}

	opts.source.register(cmd)
	opts.parse.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, yaml, csv, table (default from config)")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, po *parseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts := c.baseOptions()
	opts.Input = input
	po.source.apply(&opts)
	po.parse.apply(cmd, &opts)

	format := po.format
	if format == "" {
		format = c.Config.Chart.Format
	}
	f, err := sink.ParseFormat(format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, po.source.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger, "parse")
	stop := fetchSpinner(ctx, input)
	ds, res, err := runner.Parse(ctx, opts)
	stop()
	if err != nil {
		return err
	}
	prog.parsed(len(ds.Records), res)

	data, err := sink.RenderDataset(ds, f)
	if err != nil {
		return err
	}
	return c.emit(ctx, po.output, data)
}

// emit writes data to path, or to stdout when path is empty or "-".
func (c *CLI) emit(ctx context.Context, path string, data []byte) error {
	if path == "" || path == "-" {
		return writeOutput(c.out(), data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(ctx).Debug("wrote output", "path", path, "bytes", len(data))
	printSuccess("Wrote %s", path)
	return nil
}
