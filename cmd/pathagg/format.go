package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Print the canonical JSON form of a request",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		envelope, _ := cmd.Flags().GetBool("envelope")
		var out []byte
		if envelope {
			out, err = cfg.MarshalEnvelope()
		} else {
			out, err = cfg.MarshalJSON()
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().Bool("envelope", false, "Wrap the body with its type name, meta and aggs")
}
