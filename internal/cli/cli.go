// Package cli implements the mathscene command-line interface.
//
// This package provides commands for rendering the scene catalog to frames,
// timelines and videos, verifying the mathematics each scene illustrates,
// inspecting binding graphs and previewing scenes in a terminal or browser.
// The CLI is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
//   - render: Play a scene and write SVG, PNG, PDF, JSON or MP4 output
//   - list: Show the scene catalog
//   - check: Verify each scene's mathematical properties
//   - graph: Draw which cells each object of a scene reads
//   - preview: Scrub through a scene's timeline in the terminal
//   - serve: Serve frames, timelines and metrics over HTTP
//   - cache: Manage the rendered frame cache
//
// # Configuration
//
// Settings are read from --config, ./mathscene.toml or
// $XDG_CONFIG_HOME/mathscene/config.toml, in that order. Flags override the
// file. Scene parameters live in [scenes.<name>] tables.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/buildinfo"
	"github.com/matzehuels/mathscene/pkg/cache"
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mathscene"

	// configName is the file looked up in the working directory.
	configName = "mathscene.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Mathscene renders reactive math animations",
		Long:         `Mathscene plays scripted math scenes in which every drawn object is derived from a few animated values, and writes the frames as images, timelines or video.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.path != "" {
				c.Logger.Debug("loaded config", "path", cfg.path)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+configName+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured frame cache. An unreachable redis server is
// logged and rendering continues uncached.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case "", cacheBackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case cacheBackendRedis:
		var opts []cache.RedisOption
		if cfg.Redis.Prefix != "" {
			opts = append(opts, cache.WithPrefix(cfg.Redis.Prefix))
		}
		rc := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := rc.Ping(ctx); err != nil {
			c.Logger.Warn("redis cache unavailable, rendering without cache", "addr", cfg.Redis.Addr, "err", err)
			_ = rc.Close()
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file or redis)", cfg.Backend)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the user config directory (~/.config/mathscene/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
