package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [base64]",
	Short: "Decode a base64 binary request and print its envelope",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) > 0 && args[0] != "-" {
			text = args[0]
		} else {
			data, err := readInput(cmd, "-")
			if err != nil {
				return err
			}
			text = string(data)
		}

		payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("invalid base64: %w", err)
		}
		cfg, err := hierarchy.Decode(payload)
		if err != nil {
			return err
		}
		out, err := cfg.MarshalEnvelope()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "{%q:%s}\n", cfg.Name(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
