package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/configurator"
	"github.com/jaspreet-dot-casa/postinstall/pkg/ui"
)

func newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List supported trigger packages",
		Long:  `List every package that triggers a configuration routine, in dispatch order. Matching against the selection is exact.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := configurator.DefaultRegistry()

			printf(cmd, "Found %d trigger packages:\n\n", len(registry.Routines))
			for _, routine := range registry.Routines {
				printf(cmd, "  - %s: %s\n", ui.BoldStyle.Render(routine.Package), routine.Description)
				if len(routine.Tools) > 0 {
					printf(cmd, "%s\n", ui.Hint("  tools: "+strings.Join(routine.Tools, ", ")))
				}
			}
			return nil
		},
	}
}
