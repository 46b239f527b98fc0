package cmd

import (
	"github.com/spf13/cobra"

	"torture.dev/pkg/torture/internal/domain"
	m "torture.dev/pkg/torture/internal/model"
)

var runOutDirFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run SUITE",
		Short: "Compile and run a single suite",
		Long: `Compile and run a single suite directory, verifying the program's
output against the suite's output.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			suite := m.Path(args[0])
			ui := selectUI(cmd, false)

			ui.SuiteStarted(suite)

			outcome, err := orchestrator.CompileAndRun(cmd.Context(), suite, cfg, domain.RunOptions{
				ProvidedOutDir:  m.Path(runOutDirFlag),
				ClearBuildCache: clearCacheFlag,
			})
			if err != nil {
				return err
			}

			ui.SuiteFinished(m.BatchEntry{Suite: suite, Outcome: outcome})

			if outcome.Failed() {
				return exitCodeError{code: outcome.ExitCode()}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&runOutDirFlag, outDirFlagName, "", "directory to place built files in (kept after the run)")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
