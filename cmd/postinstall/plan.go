package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/configurator"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
	"github.com/jaspreet-dot-casa/postinstall/pkg/ui"
)

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the routines a run would execute",
		Long:  `List the routines that the configured package selection triggers, in dispatch order, with the staged files each one consumes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			c := configurator.New(cfg, configurator.Options{
				Runner: &executor.RecordingRunner{},
				Fs:     opts.filesystem(),
			})

			plan := c.Plan()
			if len(plan) == 0 {
				printf(cmd, "No trigger packages selected.\n")
				return nil
			}

			printf(cmd, "%s\n", ui.HeaderStyle.Render("Planned routines"))
			for i, routine := range plan {
				printf(cmd, "%d. %s  %s\n", i+1, ui.AccentStyle.Render(routine.Package), routine.Description)
				if len(routine.Staged) > 0 {
					printf(cmd, "%s\n", ui.Hint("staged: "+strings.Join(routine.Staged, ", ")))
				}
			}
			return nil
		},
	}
}
