package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/ui"
	"github.com/jaspreet-dot-casa/postinstall/pkg/validation"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration against the target system",
		Long: `Check the config file for missing credentials and usernames, and the target
system for the home directory and staged files the selected routines need.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			result := validation.NewValidator(opts.filesystem()).Validate(cfg)

			for _, issue := range result.Issues {
				line := issue.Message
				if issue.Field != "" {
					line = fmt.Sprintf("%s (%s)", issue.Message, issue.Field)
				}
				if issue.Severity == validation.SeverityError {
					printf(cmd, "%s\n", ui.Fail(line))
				} else {
					printf(cmd, "%s\n", ui.Warn(line))
				}
			}

			if result.HasErrors() {
				return withExitCode(exitValidation, fmt.Errorf("validation failed with %d error(s)", result.ErrorCount()))
			}

			if len(result.Issues) == 0 {
				printf(cmd, "%s\n", ui.Pass("Configuration is valid."))
			} else {
				printf(cmd, "\nValidation passed with %d warning(s).\n", result.WarningCount())
			}
			return nil
		},
	}
}
