package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// exampleCommand prints sample data that every other command accepts.
func (c *CLI) exampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print sample tab-separated data",
		Long: `Print sample tab-separated data, the same rows a new chart starts with.

Example:
  butterfly example | butterfly render -f table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(c.out(), []byte(chart.SampleCSV))
		},
	}
}
