package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	m "torture.dev/pkg/torture/internal/model"
)

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_BatchStarting(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.BatchStarting([]m.Path{"suites/a", "suites/b"})

	assert.Contains(t, buf.String(), "Running the following 2 SSCCEs:")
	assert.Contains(t, buf.String(), "suites/a")
	assert.Contains(t, buf.String(), "suites/b")
}

func TestSimpleUI_BatchStartingSingular(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.BatchStarting([]m.Path{"suites/a"})

	assert.Contains(t, buf.String(), "Running the following 1 SSCCE:")
}

func TestSimpleUI_SuiteFinishedPass(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SuiteFinished(m.BatchEntry{Suite: "suites/a", Outcome: m.SuiteOutcome{Kind: m.Passed}})

	assert.Contains(t, buf.String(), "PASS")
	assert.Contains(t, buf.String(), "suites/a")
}

func TestSimpleUI_SuiteFinishedCompileFailureShowsCapturedOutput(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SuiteFinished(m.BatchEntry{Suite: "suites/bad", Outcome: m.SuiteOutcome{
		Kind: m.CompileFailure,
		Compile: &m.CompileError{
			Kind:   m.CompilerReportedFailure,
			Output: &m.ProcessOutput{ExitCode: 1, Stderr: []byte("TYPE MISMATCH\nline 3\n")},
		},
	}})

	out := buf.String()
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "compilation failed")
	assert.Contains(t, out, "exit status: 1")
	assert.Contains(t, out, "TYPE MISMATCH")
	assert.Contains(t, out, "line 3")
}

func TestSimpleUI_SuiteFinishedAllowedFailure(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SuiteFinished(m.BatchEntry{Suite: "suites/flaky", Outcome: m.SuiteOutcome{
		Kind:    m.RunFailure,
		Allowed: true,
		Run:     &m.RunError{Kind: m.RuntimeReportedFailure},
		OutDir:  m.ProvidedOutDir("/kept"),
	}})

	out := buf.String()
	assert.Contains(t, out, "allowed")
	assert.Contains(t, out, "build artifacts kept in /kept")
}

func TestSimpleUI_SuiteFinishedAnomaly(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SuiteFinished(m.BatchEntry{Suite: "suites/odd", Outcome: m.SuiteOutcome{
		Kind:    m.ExpectedFailure,
		Allowed: true,
	}})

	assert.Contains(t, buf.String(), "expected to fail but passed")
}

func TestSimpleUI_BatchFinishedSummary(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.BatchFinished([]m.BatchEntry{
		{Suite: "suites/a", Outcome: m.SuiteOutcome{Kind: m.Passed}},
		{Suite: "suites/b", Outcome: m.SuiteOutcome{Kind: m.CompileFailure}},
		{Suite: "suites/c", Outcome: m.SuiteOutcome{Kind: m.RunFailure, Allowed: true}},
	})

	out := buf.String()
	assert.Contains(t, out, "3 suites")
	assert.Contains(t, out, "1 passed, 1 failed")
	assert.Contains(t, out, "suites/b")
}
