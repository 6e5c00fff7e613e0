package main

import (
	"fmt"

	"github.com/handiism/xkcd-downloader/internal/console"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "xkcddl.json"

func newConfigCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the effective settings to a file",
		Long:  "Write the effective settings (defaults, settings file and --output) as JSON. The path defaults to --config, then " + defaultConfigFile + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := global.settings()
			if err != nil {
				return err
			}

			path := defaultConfigFile
			switch {
			case len(args) == 1:
				path = args[0]
			case global.configPath != "":
				path = global.configPath
			}

			if err := settings.Save(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			console.NewPrinter(cmd.OutOrStdout(), false).Success("Settings written to " + path)
			return nil
		},
	}
}
