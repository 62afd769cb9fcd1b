package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/configurator"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
	"github.com/jaspreet-dot-casa/postinstall/pkg/ui"
)

func newRunCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configuration pass",
		Long: `Run the configuration routine of every selected trigger package, in
dispatch order. The pass stops at the first failing step.

With --dry-run no command is executed and the host filesystem is left
untouched; the commands that would run are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPass(cmd, opts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Record commands against an in-memory copy of the system instead of running them")

	return cmd
}

func runPass(cmd *cobra.Command, opts *options, dryRun bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	var c *configurator.Configurator
	var recorder *executor.RecordingRunner
	if dryRun {
		c, recorder, err = dryRunConfigurator(cfg, opts)
		if err != nil {
			return err
		}
	} else {
		c = configurator.New(cfg, configurator.Options{
			Runner: opts.commandRunner(),
			Fs:     opts.filesystem(),
		})
	}

	report, runErr := c.Run(cmd.Context())

	if recorder != nil {
		printf(cmd, "%s\n", ui.HeaderStyle.Render("Commands that would run"))
		for _, line := range recorder.Commands() {
			printf(cmd, "%s\n", ui.CommandStyle.Render(line))
		}
		printf(cmd, "\n")
	}

	printReport(cmd, report)

	if runErr != nil {
		var routineErr *configurator.RoutineError
		if errors.As(runErr, &routineErr) {
			return withExitCode(exitAborted, runErr)
		}
		return runErr
	}
	return nil
}

// dryRunConfigurator builds a configurator that records commands and works
// on an in-memory snapshot of the paths the plan reads.
func dryRunConfigurator(cfg *config.Config, opts *options) (*configurator.Configurator, *executor.RecordingRunner, error) {
	recorder := &executor.RecordingRunner{}

	planner := configurator.New(cfg, configurator.Options{Runner: recorder, Fs: opts.filesystem()})
	snapshot, err := configurator.SnapshotFs(opts.filesystem(), planner.RequiredPaths())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare dry run: %w", err)
	}

	c := configurator.New(cfg, configurator.Options{Runner: recorder, Fs: snapshot})
	return c, recorder, nil
}

func printReport(cmd *cobra.Command, report *configurator.Report) {
	if report == nil {
		return
	}

	if len(report.Configured) == 0 {
		printf(cmd, "%s\n", ui.DimStyle.Render("No packages configured."))
	} else {
		printf(cmd, "%s\n", ui.Pass("Configured: "+strings.Join(report.Configured, ", ")))
	}

	for _, ext := range report.FailedExtensions {
		printf(cmd, "%s\n", ui.Warn("Extension failed to install: "+ext))
	}

	printf(cmd, "%s\n", ui.DimStyle.Render(fmt.Sprintf("Run %s finished in %s", report.RunID, report.Duration.Round(time.Millisecond))))
}
