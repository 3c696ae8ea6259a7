package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/pathhierarchy/internal/compiler"
	"github.com/aretw0/pathhierarchy/internal/logging"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/spf13/cobra"
)

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:           "pathagg",
	Short:         "pathagg builds and encodes path_hierarchy aggregation requests",
	Long:          `pathagg validates, normalizes and serializes path_hierarchy aggregation requests written in JSON or YAML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(raw)
		if err != nil {
			return err
		}
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("name", "agg", "Aggregation name for parsed requests")
}

// readInput returns the contents of path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// loadConfig parses the request document named by args (or stdin).
func loadConfig(cmd *cobra.Command, args []string) (hierarchy.Config, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return hierarchy.Config{}, err
	}
	name, _ := cmd.Flags().GetString("name")

	format := compiler.DetectFormat(path, data)
	logger.Debug("parsing request", "path", path, "format", format, slog.Int("bytes", len(data)))
	return compiler.NewParser().Parse(name, data, format)
}
