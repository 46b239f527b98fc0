package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"torture.dev/pkg/torture/internal/controller"
	m "torture.dev/pkg/torture/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report FILE",
		Short: "View a previously written batch report",
		Long:  "Load a YAML batch report written by 'batch --output' and render its summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := reportStore.LoadReport(m.Path(args[0]))
			if err != nil {
				return fmt.Errorf("loading report: %w", err)
			}

			controller.RenderReport(cmd.OutOrStdout(), report)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
