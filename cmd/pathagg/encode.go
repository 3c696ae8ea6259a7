package main

import (
	"encoding/base64"
	"fmt"

	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/aretw0/pathhierarchy/pkg/stream"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Print the binary form of a request as base64",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		bodyOnly, _ := cmd.Flags().GetBool("body-only")
		var payload []byte
		if bodyOnly {
			w := stream.NewWriter(16)
			err = hierarchy.EncodeBody(w, cfg)
			payload = w.Bytes()
		} else {
			payload, err = hierarchy.Encode(cfg)
		}
		if err != nil {
			return err
		}
		logger.Debug("encoded request", "name", cfg.Name(), "bytes", len(payload))
		fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(payload))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("body-only", false, "Encode only the aggregation body")
}
