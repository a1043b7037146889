package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the butterfly CLI with the process arguments and returns an
// error if any command fails. This is the main entry point.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run builds the command tree around the given streams and executes args.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var verbose bool

	c := New(stderr, LogInfo)
	c.stdin = stdin
	c.stdout = stdout
	uiOut = stderr

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))

		if loadConfig != nil {
			return loadConfig(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
