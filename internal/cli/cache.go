package cli

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered frame cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached frame and graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("Cache is disabled")
				return nil
			}

			count := -1
			if fc, ok := cc.(*cache.FileCache); ok {
				count = countFiles(fc.Dir())
			}
			if err := clearer.Clear(ctx); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clear cache")
			}
			if count >= 0 {
				printSuccess("Cleared %d cached entries", count)
			} else {
				printSuccess("Cleared cache")
			}
			printDetail("%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue("backend", c.cacheBackend())
			printKeyValue("location", c.cacheLocation())
			return nil
		},
	}
}

func (c *CLI) cacheBackend() string {
	if c.Config.Cache.Backend == "" {
		return cacheBackendFile
	}
	return c.Config.Cache.Backend
}

// cacheLocation is the cache directory or the redis address.
func (c *CLI) cacheLocation() string {
	cfg := c.Config.Cache
	if c.cacheBackend() == cacheBackendRedis {
		return "redis://" + cfg.Redis.Addr
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "(unavailable)"
	}
	return dir
}

func countFiles(dir string) int {
	n := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}
