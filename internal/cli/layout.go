package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/pipeline"
	"github.com/matzehuels/butterfly/pkg/source"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	source sourceFlags
	parse  parseFlags
	layout layoutFlags
	output string
}

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Compute butterfly chart geometry and write a layout document",
		Long: `Compute butterfly chart geometry and write a layout document.

The layout holds everything a renderer needs: the symmetric value domain,
the zero line, one rectangle per bar (left bars extend leftward and carry a
negative width), value label anchors, and axis ticks. Colors and titles are
carried through untouched.

The output defaults to <input>.layout.json in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, inputArg(args), &opts)
		},
	}

	opts.source.register(cmd)
	opts.parse.register(cmd)
	opts.layout.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, lo *layoutOpts) error {
	ctx := cmd.Context()

	opts := c.baseOptions()
	opts.Input = input
	opts.Formats = []string{pipeline.DefaultFormat}
	lo.source.apply(&opts)
	lo.parse.apply(cmd, &opts)
	lo.layout.apply(cmd, &opts)

	runner, err := c.newRunner(ctx, lo.source.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx), "layout")
	stop := fetchSpinner(ctx, input)
	result, err := runner.Execute(ctx, opts)
	stop()
	if err != nil {
		return err
	}
	prog.done("computed layout", "rows", len(result.Dataset.Records))

	output := lo.output
	if output == "" {
		output = c.outputBase(input) + ".layout.json"
	}
	if output == "-" {
		return writeOutput(c.out(), result.Artifacts[pipeline.DefaultFormat])
	}
	if err := chart.WriteLayoutFile(result.Layout, output); err != nil {
		return err
	}

	printSuccess("Layout computed")
	printFile(output)
	printStats(result.Stats)
	printNextStep("Render", appName+" render "+input+" -f table")
	return nil
}

// outputBase returns the file stem for outputs derived from input.
func (c *CLI) outputBase(input string) string {
	src, err := source.Open(input, source.Options{Stdin: c.stdin})
	if err != nil {
		return appName
	}
	return source.BaseName(src)
}
