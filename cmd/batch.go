package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"torture.dev/pkg/torture/internal/domain"
	m "torture.dev/pkg/torture/internal/model"
)

var batchFailFastFlag bool
var batchParallelFlag int
var batchInteractiveFlag bool

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIRECTORY",
		Short: "Run every suite found under a directory",
		Long: `Discover suites (immediate subdirectories containing elm.json) under the
given directory and run them in order, reporting each outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			suites, err := suiteFS.DiscoverSuites(m.Path(args[0]))
			if err != nil {
				return fmt.Errorf("scanning for suites: %w", err)
			}

			ui := selectUI(cmd, batchInteractiveFlag)
			ui.BatchStarting(suites)

			entriesCh, errCh := batchRunner.Stream(cmd.Context(), suites, cfg, domain.BatchOptions{
				FailFast:        viper.GetBool(failFastKey),
				Parallel:        viper.GetInt(batchParallelKey),
				ClearBuildCache: clearCacheFlag,
				OnStart:         ui.SuiteStarted,
			})

			var entries []m.BatchEntry

			exitCode := m.ExitSuccess

			for entry := range entriesCh {
				ui.SuiteFinished(entry)

				entries = append(entries, entry)

				if entry.Outcome.Failed() && exitCode == m.ExitSuccess {
					exitCode = entry.Outcome.ExitCode()
				}
			}

			if err := <-errCh; err != nil {
				return err
			}

			ui.BatchFinished(entries)

			if reportFileFlag != "" {
				if err := reportStore.SaveReport(m.Path(reportFileFlag), entries); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}

			if exitCode != m.ExitSuccess {
				return exitCodeError{code: exitCode}
			}

			return nil
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&batchFailFastFlag, failFastFlagName, viper.GetBool(failFastKey), "stop after the first non-allowed failure")
	bindFlagToConfig(cmd.Flags().Lookup(failFastFlagName), failFastKey)

	cmd.Flags().IntVarP(&batchParallelFlag, parallelFlagName, "p", viper.GetInt(batchParallelKey), "number of suites to run concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), batchParallelKey)

	cmd.Flags().BoolVarP(&batchInteractiveFlag, interactiveFlagName, "i", false, "show live progress (requires a terminal)")
}
