package domain

import (
	"bytes"
	"context"
	_ "embed"
	"log/slog"
	"unicode/utf8"

	"torture.dev/pkg/torture/internal/adapter"
	m "torture.dev/pkg/torture/internal/model"
)

// driverTemplate is the fixed comparison driver concatenated into every
// generated harness. It defines the pass/fail protocol: the program talks
// through its write port only, and the driver reports mismatches via the
// process exit status and stderr.
//
//go:embed assets/run.js
var driverTemplate string

// RunStep executes a compiled suite and checks its observable output.
type RunStep interface {
	Run(ctx context.Context, suite, outDir m.Path, cfg m.Config) *m.RunError
}

type runStep struct {
	fs      adapter.SuiteFS
	invoker adapter.CommandInvoker
}

// NewRunStep constructs a RunStep backed by the provided filesystem and
// command invoker adapters.
func NewRunStep(fs adapter.SuiteFS, invoker adapter.CommandInvoker) RunStep {
	return &runStep{fs: fs, invoker: invoker}
}

// Run synthesizes the harness, invokes the runtime on it and validates the
// produced streams. The compiled artifact in outDir is read, not modified.
func (s *runStep) Run(ctx context.Context, suite, outDir m.Path, cfg m.Config) *m.RunError {
	if !s.fs.Exists(suite.Join(m.DescriptorFile)) {
		return &m.RunError{Kind: m.RunSuiteDoesNotExist}
	}

	expected, rerr := s.readExpectedOutput(suite)
	if rerr != nil {
		return rerr
	}

	runtime, err := s.invoker.LookPath(cfg.Runtime)
	if err != nil {
		return &m.RunError{Kind: m.RuntimeNotFound, Err: err}
	}

	harnessPath := outDir.Join(m.HarnessFile)
	if err := s.fs.WriteFile(harnessPath, synthesizeHarness(expected), 0o600); err != nil {
		return &m.RunError{Kind: m.WritingHarnessFailed, Err: err}
	}

	slog.Debug("invoking runtime", "suite", suite, "harness", harnessPath)

	output, err := s.invoker.Invoke(ctx, adapter.InvocationSpec{
		Exe:  runtime,
		Args: []string{"--unhandled-rejections=strict", string(harnessPath)},
	})
	if err != nil {
		return &m.RunError{Kind: m.RuntimeProcessFailed, Err: err}
	}

	if !output.Success() {
		return &m.RunError{Kind: m.RuntimeReportedFailure, Output: &output}
	}

	if len(output.Stdout) > 0 {
		return &m.RunError{Kind: m.UnexpectedOutputProduced, Output: &output}
	}

	if len(output.Stderr) > 0 && !isBenignDiagnostic(output.Stderr) {
		return &m.RunError{Kind: m.UnexpectedOutputProduced, Output: &output}
	}

	return nil
}

func (s *runStep) readExpectedOutput(suite m.Path) (string, *m.RunError) {
	data, err := s.fs.ReadFile(suite.Join(m.ExpectedOutputFile))
	if err != nil {
		return "", &m.RunError{Kind: m.CannotFindExpectedOutput, Err: err}
	}

	if !utf8.Valid(data) {
		return "", &m.RunError{Kind: m.ExpectedOutputNotUtf8}
	}

	return string(data), nil
}

// synthesizeHarness builds the driver script the runtime executes. The
// expected output is embedded verbatim inside a String.raw template literal
// so quotes and backslashes survive untouched and re-parse as the original
// JSON value at run time.
func synthesizeHarness(expectedOutput string) []byte {
	var b bytes.Buffer

	b.WriteString("const { Elm } = require('./" + m.CompiledFile + "');\n")
	b.WriteString("const expectedOutput = JSON.parse(String.raw`")
	b.WriteString(expectedOutput)
	b.WriteString("`);\n")
	b.WriteString(driverTemplate)
	b.WriteString("\nmodule.exports(Elm, expectedOutput);\n")

	return b.Bytes()
}

// isBenignDiagnostic matches the compiler's optimization notices, one per
// build mode. Only an exact match of the full notice counts; anything else
// on stderr is a real diagnostic.
func isBenignDiagnostic(stderr []byte) bool {
	return string(stderr) == optimizationNotice("DEV") ||
		string(stderr) == optimizationNotice("DEBUG")
}

func optimizationNotice(mode string) string {
	return "Compiled in " + mode + " mode. Follow the advice at " +
		"https://elm-lang.org/0.19.1/optimize for better performance and smaller assets.\n"
}
