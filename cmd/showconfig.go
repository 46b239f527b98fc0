package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// showConfigCmd represents the config command.
var showConfigCmd = newShowConfigCmd()

func newShowConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Dump the effective configuration",
		Long:  "Print the effective toolchain configuration as YAML, after merging config file, environment and defaults.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(loadConfig())
			if err != nil {
				return fmt.Errorf("serializing config: %w", err)
			}

			cmd.Print(string(data))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
