package main

import (
	"fmt"

	"pitchdeck-scraper/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Writes the default configuration to --config unless it already exists.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.EnsureUserConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("write %s: %w", cfgPath, err)
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote default config to %s\n", cfgPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, left unchanged\n", cfgPath)
		}
		return nil
	},
}
