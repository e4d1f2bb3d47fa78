// Package cli implements the assetsync command-line interface.
//
// The single root command walks an asset directory, refreshes every asset
// description from its GitHub repository's Cargo.toml and prints a report
// of what changed. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Logging
//
// Log output goes to stderr at info level, or debug level with --verbose.
// The logger is passed through context.Context to the sync runner. The
// report goes to stdout so that JSON and YAML output can be piped.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetsync/internal/config"
	"github.com/matzehuels/assetsync/pkg/buildinfo"
	"github.com/matzehuels/assetsync/pkg/integrations/github"
	"github.com/matzehuels/assetsync/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "assetsync"

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
	// Out receives the sync report.
	Out io.Writer
}

// New creates a new CLI instance that logs to w and reports to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// syncFlags holds the flag values of the root command.
type syncFlags struct {
	dryRun  bool
	envFile string
	exclude []string
	prefix  string
	output  string
}

// RootCommand creates the root cobra command.
func (c *CLI) RootCommand() *cobra.Command {
	var flags syncFlags

	root := &cobra.Command{
		Use:   appName + " [flags] <root>",
		Short: "Sync asset descriptions with their crates' Cargo.toml",
		Long: `assetsync walks a directory of asset descriptions (*.toml) and, for every asset
that links to a GitHub repository, fetches the repository's Cargo.toml to refresh
the asset's licenses and the version of the bevy dependency it targets.

The GitHub token is read from GITHUB_TOKEN, which may be set in a .env file.`,
		Args:         cobra.ExactArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context(), args[0], flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.Flags()
	f.BoolVar(&flags.dryRun, "dry-run", false, "compute updates without writing files")
	f.StringVar(&flags.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "skip paths matching a doublestar pattern (repeatable)")
	f.StringVar(&flags.prefix, "prefix", pipeline.DefaultPrefix, "dependency name prefix whose version is recorded")
	f.StringVarP(&flags.output, "output", "o", pipeline.FormatText, "report format: text, json, yaml")

	return root
}

// =============================================================================
// Sync
// =============================================================================

func (c *CLI) runSync(ctx context.Context, root string, flags syncFlags) error {
	if err := pipeline.ValidateFormat(flags.output); err != nil {
		return err
	}

	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return err
	}

	client := github.NewContentClient(cfg.Token, cfg.ClientOptions()...)

	logger := loggerFromContext(ctx)
	logger.Debug("configuration loaded",
		"version", buildinfo.Version,
		"api", client.BaseURL(),
		"user_agent", cfg.UserAgent,
		"timeout", cfg.HTTPTimeout,
	)

	runner := pipeline.NewRunner(client, logger)

	report, err := runner.Run(ctx, pipeline.Options{
		Root:    root,
		Prefix:  flags.prefix,
		Exclude: flags.exclude,
		DryRun:  flags.dryRun,
	})
	if report != nil {
		if werr := writeReport(c.Out, report, flags.output); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// writeReport renders the report in the requested format.
func writeReport(w io.Writer, r *pipeline.Report, format string) error {
	if format == pipeline.FormatText {
		printReport(w, r)
		return nil
	}
	return r.Encode(w, format)
}
