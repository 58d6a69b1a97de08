package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/commands"
	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/config"
	"github.com/pasdam/batchRegexRenamer/pkg/log"
	"github.com/pasdam/batchRegexRenamer/pkg/status"
)

// newRootCmd builds the command tree around o
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	root := &cobra.Command{
		Use:   "batchrename",
		Short: "Rename many files at once through a pipeline of rules",
		Long: `batchrename runs every file of a directory through an ordered list of
rename rules, shows the result, commits it as one transaction and can undo it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupRoot(cmd.Context(), o)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(root, o)

	root.AddCommand(
		commands.NewPreviewCmd(o),
		commands.NewApplyCmd(o),
		commands.NewUndoCmd(o),
		commands.NewRulesCmd(o),
		newVersionCmd(o),
	)

	return root
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .batchrename.* in the working directory)")
	cmd.PersistentFlags().StringVarP(&o.Script, "script", "s", "", "rule script, overrides the config")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "run passes in the background and stop waiting on interrupt")
	cmd.PersistentFlags().BoolVar(&o.Yes, "yes", false, "apply without asking for confirmation")
}

// setupRoot loads the config and wires loggers once flags are parsed
func setupRoot(ctx context.Context, o *opts.RootOpts) (context.Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return ctx, errors.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Find(ctx, wd, o.ConfigFile)
	if err != nil {
		return ctx, errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	level := cfg.Level()
	if o.Debug {
		level = zerolog.DebugLevel
	}
	ctx = setupLogging(ctx, os.Stderr, level)

	o.UserLogger = status.NewUserLogger(ctx, o.Out)
	o.Console = log.New(o.Out)

	zerolog.Ctx(ctx).Debug().Str("config", cfg.Location()).Str("settings", cfg.String()).Msg("configuration loaded")
	return log.NewContext(ctx, o.Console), nil
}

// setupLogging configures zerolog for level and returns a context carrying it
func setupLogging(ctx context.Context, w io.Writer, level zerolog.Level) context.Context {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// setupColor turns colors off when stdout is not a terminal
func setupColor(out *os.File) {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return
	}
	color.NoColor = true
	pterm.DisableColor()
}
