package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/internal/config"
	"github.com/matzehuels/butterfly/internal/server"
)

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  POST /v1/parse       tabular text or {"text": ...} to a dataset
  POST /v1/transform   a dataset to signed values and the padded domain
  POST /v1/layout      text or a dataset to a layout document
  POST /v1/csv         a dataset to CSV text

Config display defaults apply to every request that does not override them.
The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			defaults := c.baseOptions()
			defaults.Stdin = nil
			srv := server.New(runner, loggerFromContext(ctx),
				server.WithDefaults(defaults),
				server.WithMaxBodyBytes(maxBody))

			printInfo("Listening on %s", StyleHighlight.Render("http://"+addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the source cache")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")

	return cmd
}
