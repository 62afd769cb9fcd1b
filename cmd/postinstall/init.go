package main

import (
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config file",
		Long: `Write a commented sample config to path (default ` + config.DefaultPath + `).
The format follows the extension: .yaml, .yml or .toml.

Examples:
  postinstall init                      # Write to the default location
  postinstall init ./postinstall.yaml   # Write to the current directory
  postinstall init ./postinstall.toml   # Write TOML instead
  postinstall init --force              # Overwrite an existing file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}

			writer := &config.Writer{Fs: opts.filesystem(), Force: force}
			if err := writer.WriteSample(path); err != nil {
				return err
			}

			printf(cmd, "Sample config written to: %s\n", path)
			printf(cmd, "Edit it, then run: postinstall validate -c %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

