package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromepdf/pkg/cache"
	"github.com/matzehuels/chromepdf/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached documents from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := cfg.OpenCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			var n int
			switch s := store.(type) {
			case *cache.FileCache:
				n, err = s.Clear()
				if err == nil {
					printSuccess("Cleared %d cached documents", n)
					printDetail("Directory: %s", s.Dir())
				}
			case *cache.RedisCache:
				n, err = s.Clear(cmd.Context())
				if err == nil {
					printSuccess("Cleared %d cached documents", n)
					printDetail("Redis: %s", cfg.Cache.RedisAddr)
				}
			default:
				printInfo("Cache is disabled")
			}
			return err
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = config.CacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
