package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/doctor"
	"github.com/jaspreet-dot-casa/postinstall/pkg/pacman"
	"github.com/jaspreet-dot-casa/postinstall/pkg/ui"
)

func newDoctorCmd(opts *options) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools the selected routines need are installed",
		Long: `Check for root privileges, the staging directory and every binary the
selected routines invoke. With --fix, missing tools are installed via pacman.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			runner := opts.commandRunner()
			checker := doctor.NewCheckerWith(cfg, runner, opts.filesystem(), os.Geteuid)
			groups := checker.CheckAll()
			printGroups(cmd, groups)

			if fix && doctor.HasIssues(groups) {
				installed, err := doctor.NewFixer(pacman.New(runner)).FixAll(cmd.Context(), groups)
				if err != nil {
					return err
				}
				if len(installed) > 0 {
					printf(cmd, "\n%s\n\n", ui.Pass("Installed "+strings.Join(installed, ", ")))
					groups = checker.CheckAll()
					printGroups(cmd, groups)
				}
			}

			summary := doctor.GetSummary(groups)
			printf(cmd, "\n%d checks: %d ok, %d missing, %d warnings, %d errors\n",
				summary.Total, summary.OK, summary.Missing, summary.Warnings, summary.Errors)

			if doctor.HasIssues(groups) {
				return withExitCode(exitValidation, fmt.Errorf("doctor found %d missing and %d failed check(s)", summary.Missing, summary.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Install missing tools via pacman")

	return cmd
}

func printGroups(cmd *cobra.Command, groups []doctor.CheckGroup) {
	for _, group := range groups {
		printf(cmd, "%s\n", ui.HeaderStyle.Render(group.Name))
		if len(group.Checks) == 0 {
			printf(cmd, "%s\n", ui.Skip("nothing to check"))
		}
		for _, check := range group.Checks {
			line := fmt.Sprintf("%s: %s", check.Name, check.Message)
			if len(check.RequiredBy) > 0 {
				line += ui.DimStyle.Render(" (" + strings.Join(check.RequiredBy, ", ") + ")")
			}

			switch check.Status {
			case doctor.StatusOK:
				printf(cmd, "%s\n", ui.Pass(line))
			case doctor.StatusWarning:
				printf(cmd, "%s\n", ui.Warn(line))
			default:
				printf(cmd, "%s\n", ui.Fail(line))
				if check.FixCommand != nil {
					printf(cmd, "%s\n", ui.Hint(check.FixCommand.Command))
				}
			}
		}
	}
}
