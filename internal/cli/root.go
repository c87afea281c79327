// Package cli implements the navd command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navd/pkg/config"
	"github.com/mchmarny/navd/pkg/logger"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	version = "dev"     // Set at build time via -ldflags "-X github.com/mchmarny/navd/internal/cli.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X github.com/mchmarny/navd/internal/cli.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X github.com/mchmarny/navd/internal/cli.date=date"
)

// systemError marks failures of the environment rather than of the input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile string
	logLevel   string
}

// app is the state shared by subcommands after the root pre-run.
type app struct {
	flags     rootFlags
	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd creates the top-level "navd" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "navd",
		Short:         "Pluggable navigation menu server",
		Long:          "navd validates hierarchical menu definitions, compiles them into\nnavbar markup and serves them to a page layer.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "config file (default: navd.yaml in $NAVD_CONFIG_DIR, . or ~/.navd)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newRenderCmd())

	return root
}

// setup loads the configuration and installs the default logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	a.cfg = cfg

	closer, err := logger.SetDefaultLoggerWithFile(config.AppName, version, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return &systemError{err: err}
	}
	a.logCloser = closer

	slog.Debug("configuration loaded", "file", cfg.File, "commit", commit, "date", date)

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:])
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		var se *systemError
		if errors.As(err, &se) {
			return exitSysError
		}
		return exitUserError
	}
	return exitSuccess
}
