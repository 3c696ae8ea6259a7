package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pathhierarchy"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pathagg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pathagg version %s\n", strings.TrimSpace(pathhierarchy.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
