// Package main provides the postinstall CLI, which applies per-package
// configuration to a freshly installed Arch system.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
	"github.com/jaspreet-dot-casa/postinstall/pkg/logging"
)

// version is set via -ldflags during build
var version = "dev"

// Exit codes.
const (
	exitOK         = 0
	exitGeneral    = 1
	exitConfig     = 2
	exitValidation = 3
	exitAborted    = 4
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitGeneral
}

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// options carries global flags and the system seams the subcommands use.
type options struct {
	configPath string
	verbose    int

	// logTo, runner and fs are only set in tests. Nil means console plus
	// log file, the real command runner and the OS filesystem.
	logTo  io.Writer
	runner executor.CommandRunner
	fs     afero.Fs
}

// newRootCmd creates the root command for postinstall
func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "postinstall",
		Short: "Per-package system configurator",
		Long: `postinstall runs after base installation, inside the target system.

For every selected trigger package it applies a fixed configuration routine:
moving staged dotfiles, enabling services, cloning shell frameworks and
installing editor extensions. The first failure stops the pass.`,
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.logTo != nil {
				logging.SetupLoggerTo(opts.verbose, opts.logTo)
				return
			}
			logging.SetupLogger(opts.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newPlanCmd(opts),
		newValidateCmd(opts),
		newDoctorCmd(opts),
		newPackagesCmd(),
		newInitCmd(opts),
	)

	return rootCmd
}

// loadConfig reads the config named by --config. Failures map to exitConfig.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, withExitCode(exitConfig, err)
	}
	return cfg, nil
}

func (o *options) filesystem() afero.Fs {
	if o.fs != nil {
		return o.fs
	}
	return afero.NewOsFs()
}

func (o *options) commandRunner() executor.CommandRunner {
	if o.runner != nil {
		return o.runner
	}
	return executor.NewRealRunner(logging.GetLogger("executor"))
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
