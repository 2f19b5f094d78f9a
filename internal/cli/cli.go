// Package cli implements the masonry command-line interface.
//
// # Commands
//
//   - pack: lay out a box file for a given width and print the frame
//   - gen: write a random sample box file
//   - view: live terminal masonry that repacks on resize and edits
//   - completion: shell completion scripts
//
// # Configuration
//
// Layout options and the log level come from masonry.toml in the working
// directory, or the file named by --config. --verbose overrides the level.
//
// # Logging
//
// Loggers are passed through context.Context. With debug logging, layout
// and export events are logged through observability hooks.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/config"
	"github.com/matzehuels/masonry/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used in help and completion text.
	appName = "masonry"

	// defaultWidth is the container width assumed by pack without --width.
	defaultWidth = 1200
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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Masonry packs variable-height boxes into columns",
		Long:              `Masonry lays out boxes of varying height and column span into a multi-column grid, placing each box on the shortest column run that fits it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.FileName+")")

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.genCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config, applies the log level and installs logging hooks.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if level <= LogDebug {
		hooks := newLogHooks(c.Logger)
		observability.SetLayoutHooks(hooks)
		observability.SetSinkHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("config loaded", "path", c.configPath, "level", level)
	return nil
}
