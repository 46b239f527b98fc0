package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "torture.dev/pkg/torture/internal/model"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	allowedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// SimpleUI reports suite results as plain sequential text on the command's
// output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// BatchStarting announces the suites about to run.
func (s *SimpleUI) BatchStarting(suites []m.Path) {
	plural := "s"
	if len(suites) == 1 {
		plural = ""
	}

	s.printf("Running the following %d SSCCE%s:\n", len(suites), plural)

	for _, suite := range suites {
		s.printf("  %s\n", suite)
	}

	s.printf("\n")
}

// SuiteStarted announces that a suite's pipeline has begun.
func (s *SimpleUI) SuiteStarted(suite m.Path) {
	s.printf("%s %s\n", dimStyle.Render("testing"), suite)
}

// SuiteFinished reports one classified outcome, including the raw captured
// process output on failures so a human can diagnose without rerunning.
func (s *SimpleUI) SuiteFinished(entry m.BatchEntry) {
	outcome := entry.Outcome

	switch outcome.Kind {
	case m.Passed:
		s.printf("%s %s\n", passStyle.Render("PASS"), entry.Suite)

	case m.ExpectedFailure:
		s.printf("%s %s: expected to fail but passed\n", allowedStyle.Render("ANOMALY"), entry.Suite)

	case m.CompileFailure:
		s.printf("%s %s: %s\n", s.failLabel(outcome.Allowed), entry.Suite, outcome.Compile)
		s.printProcessOutput(outcome.Compile.Output)

	case m.RunFailure:
		s.printf("%s %s: %s\n", s.failLabel(outcome.Allowed), entry.Suite, outcome.Run)
		s.printProcessOutput(outcome.Run.Output)

		if outcome.OutDir != nil {
			s.printf("  build artifacts kept in %s\n", outcome.OutDir.Path())
		}

	case m.SuiteNotExist, m.SuiteNotDir, m.SuiteNotElm:
		s.printf("%s %s: %s\n", failStyle.Render("FAIL"), entry.Suite, outcome.Kind)
	}
}

// BatchFinished renders the aggregate summary table with totals.
func (s *SimpleUI) BatchFinished(entries []m.BatchEntry) {
	var passed, failed, allowed int

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Suite", "Outcome", "Allowed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, entry := range entries {
		outcome := entry.Outcome

		switch {
		case outcome.Kind == m.Passed:
			passed++
		case outcome.Failed():
			failed++
		default:
			allowed++
		}

		allowedCell := ""
		if outcome.Allowed {
			allowedCell = "yes"
		}

		table.Append([]string{string(entry.Suite), outcome.Kind.String(), allowedCell})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d suites", len(entries)),
		fmt.Sprintf("%d passed, %d failed", passed, failed),
		fmt.Sprintf("%d", allowed),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

func (s *SimpleUI) failLabel(allowed bool) string {
	if allowed {
		return allowedStyle.Render("FAIL (allowed)")
	}

	return failStyle.Render("FAIL")
}

func (s *SimpleUI) printProcessOutput(output *m.ProcessOutput) {
	if output == nil {
		return
	}

	s.printf("  exit status: %d\n", output.ExitCode)

	for _, stream := range []struct {
		name    string
		content []byte
	}{
		{"stdout", output.Stdout},
		{"stderr", output.Stderr},
	} {
		if len(stream.content) == 0 {
			continue
		}

		s.printf("  %s:\n", stream.name)

		for _, line := range strings.Split(strings.TrimRight(string(stream.content), "\n"), "\n") {
			s.printf("    %s\n", line)
		}
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
