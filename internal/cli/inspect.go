package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/sink"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	source sourceFlags
	parse  parseFlags
	layout layoutFlags
	plain  bool
}

// inspectCommand creates the inspect command for browsing a computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [input]",
		Short: "Browse rows, signed values and label anchors interactively",
		Long: `Browse rows, signed values and label anchors interactively.

The input is either a layout document written by 'layout' (*.layout.json)
or any data input accepted by 'parse', which is laid out on the fly.
Data read from stdin, and --plain, print a static table instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, inputArg(args), &opts)
		},
	}

	opts.source.register(cmd)
	opts.parse.register(cmd)
	opts.layout.register(cmd)
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a static table instead of the interactive view")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, in *inspectOpts) error {
	l, err := c.inspectLayout(cmd, input, in)
	if err != nil {
		return err
	}

	if in.plain || input == "-" {
		return writeOutput(c.out(), []byte(sink.RenderLayoutTable(l)))
	}

	p := tea.NewProgram(NewRowListModel(l), tea.WithContext(cmd.Context()), tea.WithOutput(c.out()))
	_, err = p.Run()
	return err
}

// inspectLayout reads a layout document, or computes one from data.
func (c *CLI) inspectLayout(cmd *cobra.Command, input string, in *inspectOpts) (chart.Layout, error) {
	if strings.HasSuffix(strings.ToLower(input), ".layout.json") {
		return chart.ReadLayoutFile(input)
	}

	ctx := cmd.Context()
	opts := c.baseOptions()
	opts.Input = input
	in.source.apply(&opts)
	in.parse.apply(cmd, &opts)
	in.layout.apply(cmd, &opts)

	runner, err := c.newRunner(ctx, in.source.noCache)
	if err != nil {
		return chart.Layout{}, err
	}
	defer runner.Close()

	ds, _, err := runner.Parse(ctx, opts)
	if err != nil {
		return chart.Layout{}, err
	}
	return runner.GenerateLayout(ctx, ds, opts)
}
