package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a request document",
	Long:  `Parses the request (JSON or YAML, file or stdin), applies defaults and order normalization, and checks the depth range.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (key %s)\n", cfg.Name(), cfg.CacheKey())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
