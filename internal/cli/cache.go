package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the source cache",
		Long: `Manage the source cache.

Fetched URL sources are cached so repeated runs skip the network. The
backend is chosen in the config file: file (default), redis, or none.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.CacheConfig()
			if cfg.Backend == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			store, err := cache.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := cache.Clear(ctx, store)
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", cfg.Backend)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cacheLocation(c.Config.CacheConfig())
			if err != nil {
				return err
			}
			return writeOutput(c.out(), []byte(loc))
		},
	}
}

// cacheLocation describes where the configured backend keeps its entries.
func cacheLocation(cfg cache.Config) (string, error) {
	switch cfg.Backend {
	case cache.BackendRedis:
		return "redis://" + cfg.Redis.Addr, nil
	case cache.BackendNone:
		return "none", nil
	}
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}
