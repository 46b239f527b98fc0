// Package cmd provides the root command and CLI setup for torture.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"torture.dev/pkg/torture/internal/adapter"
	"torture.dev/pkg/torture/internal/controller"
	"torture.dev/pkg/torture/internal/domain"
)

var suiteFS adapter.SuiteFS
var invoker adapter.CommandInvoker
var reportStore adapter.ReportStore
var orchestrator domain.Orchestrator
var batchRunner domain.BatchRunner

// configFileFlag selects an explicit configuration file.
var configFileFlag string

// reportFileFlag is where the batch report is written when set.
var reportFileFlag string

// clearCacheFlag deletes each suite's elm-stuff directory before compiling.
var clearCacheFlag bool

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	suiteFS = adapter.NewLocalSuiteFS()
	invoker = adapter.NewLocalCommandInvoker()
	reportStore = adapter.NewYAMLReportStore()
	orchestrator = domain.NewOrchestrator(
		suiteFS,
		domain.NewCompileStep(suiteFS, invoker),
		domain.NewRunStep(suiteFS, invoker),
	)
	batchRunner = domain.NewBatchRunner(orchestrator)
}

const rootLongDescription = `Torture is a conformance test runner for an Elm compiler. It compiles
each suite (a directory holding a small program plus its expected output),
executes the compiled artifact under a JavaScript runtime and verifies the
program produced exactly the expected output with no stray diagnostics.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "torture",
		Short:         "Conformance test runner for an Elm compiler",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigFile(configFileFlag); err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}

			configureLogger(verboseFlag)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFileFlag, "config", "c", "", "config file (default ./"+configFileName+")")

	cmd.PersistentFlags().StringVarP(&reportFileFlag, outputFlagName, "o", "", "write a YAML batch report to this file")

	cmd.PersistentFlags().BoolVar(&clearCacheFlag, clearCacheFlagName, false, "delete each suite's elm-stuff directory before compiling")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// exitCodeError carries the mapped process exit code for a failed run:
// distinct codes for compile-stage and run-stage failures.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var ec exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}

		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// selectUI picks the interactive UI when asked for and stdout is a
// terminal, the plain sequential one otherwise.
func selectUI(cmd *cobra.Command, interactive bool) controller.UI {
	if interactive && controller.IsTTY(os.Stdout) {
		return controller.NewTUI(cmd.OutOrStdout())
	}

	return controller.NewSimpleUI(cmd)
}
