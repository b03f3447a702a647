// Package cli wires configuration, logging, and the external tool runner
// into the clipset command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clipset/clipset/internal/clip"
	"github.com/clipset/clipset/internal/config"
	"github.com/clipset/clipset/internal/logging"
	"github.com/clipset/clipset/internal/ports"
	"github.com/clipset/clipset/internal/ports/adapters/exectool"
	"github.com/clipset/clipset/internal/timespec"
)

const (
	exitUsage     = 2
	exitInterrupt = 130
)

// Main runs the root command and converts errors into process exit codes.
func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	log    *slog.Logger
	runner ports.ToolRunner
}

func newRootCommand() *cobra.Command {
	return newRootWith(&app{})
}

func newRootWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "clipset",
		Short:         "Extract video clips and convert audio via ffmpeg",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(newEncodeCommand(a))
	root.AddCommand(newCopyCommand(a))
	root.AddCommand(newAudioCommand(a))
	root.AddCommand(newConfigCommand(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if isConfigInit(cmd) {
		// `config init` must work before any config file exists
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return usageError{err}
		}
		a.cfg = cfg
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	log, err := logging.New(logging.Options{
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return usageError{err}
	}
	a.log = log
	if a.runner == nil {
		a.runner = exectool.New(log)
	}
	return nil
}

func isConfigInit(cmd *cobra.Command) bool {
	return cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config"
}

// usageError marks errors that must exit with the usage code.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exactArgs is cobra.ExactArgs with the error classified as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// exitCode maps an error to the process exit code: the forwarded tool code
// for tool failures, 130 for interrupts, 2 for usage/validation errors and
// missing executables, 1 otherwise.
func exitCode(err error) int {
	var exitErr *ports.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}
	if isUsage(err) {
		return exitUsage
	}
	return 1
}

func isUsage(err error) bool {
	var verr clip.ValidationError
	var perr *timespec.ParseError
	var uerr usageError
	return errors.As(err, &verr) ||
		errors.As(err, &perr) ||
		errors.As(err, &uerr) ||
		errors.Is(err, exec.ErrNotFound)
}
