package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source  sourceFlags
	parse   parseFlags
	layout  layoutFlags
	formats string // comma-separated output formats
	output  string // output base path; "-" writes a single format to stdout
}

// renderCommand creates the render command, which runs the full pipeline
// and encodes the chart in one or more formats.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Encode a butterfly chart as json, yaml, csv or a terminal table",
		Long: `Encode a butterfly chart as json, yaml, csv or a terminal table.

json, yaml and table encode the computed layout. csv writes the dataset back
as text with a "Category,<left>,<right>" header, ready to paste into a
spreadsheet.

With a single format and no -o the result goes to stdout. With several
formats each is written to <output><ext>, where <output> defaults to the
input's base name.

Examples:
  pbpaste | butterfly render -f table
  butterfly render sales.csv -f json,yaml -o out/sales`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	opts.source.register(cmd)
	opts.parse.register(cmd)
	opts.layout.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", fmt.Sprintf("output formats, comma-separated: %s (default from config)", formatNames()))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: stdout for one format, <input> otherwise)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, ro *renderOpts) error {
	ctx := cmd.Context()

	opts := c.baseOptions()
	opts.Input = input
	if ro.formats != "" {
		opts.Formats = parseFormats(ro.formats)
	}
	ro.source.apply(&opts)
	ro.parse.apply(cmd, &opts)
	ro.layout.apply(cmd, &opts)

	runner, err := c.newRunner(ctx, ro.source.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx), "render")
	stop := fetchSpinner(ctx, input)
	result, err := runner.Execute(ctx, opts)
	stop()
	if err != nil {
		return err
	}
	prog.done("rendered", "formats", opts.Formats)

	single := len(opts.Formats) == 1
	if single && (ro.output == "" || ro.output == "-") {
		return writeOutput(c.out(), result.Artifacts[opts.Formats[0]])
	}
	if ro.output == "-" {
		return fmt.Errorf("cannot write %d formats to stdout", len(opts.Formats))
	}

	base := ro.output
	if base == "" {
		base = c.outputBase(input)
	}
	for _, name := range opts.Formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return err
		}
		path := base + f.Ext()
		if err := c.emit(ctx, path, result.Artifacts[name]); err != nil {
			return err
		}
	}
	printStats(result.Stats)
	return nil
}

func formatNames() string {
	names := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
