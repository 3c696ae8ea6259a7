package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash [file]",
	Short: "Print the cache key of a request",
	Long:  `Prints the key shared by every request whose separator, depths and order are equal.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.CacheKey())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
