// Package domain implements the suite execution pipeline: the compile and
// run steps, the per-suite orchestrator and the batch runner.
package domain

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"torture.dev/pkg/torture/internal/adapter"
	m "torture.dev/pkg/torture/internal/model"
)

// toolchainHomeEnv is forwarded to the compiler when set, so package
// downloads land in the caller's cache.
const toolchainHomeEnv = "ELM_HOME"

// CompileStep compiles one suite into an output directory.
type CompileStep interface {
	Compile(ctx context.Context, suite, outDir m.Path, cfg m.Config) *m.CompileError
}

type compileStep struct {
	fs      adapter.SuiteFS
	invoker adapter.CommandInvoker
}

// NewCompileStep constructs a CompileStep backed by the provided filesystem
// and command invoker adapters.
func NewCompileStep(fs adapter.SuiteFS, invoker adapter.CommandInvoker) CompileStep {
	return &compileStep{fs: fs, invoker: invoker}
}

// Compile invokes the compiler on the suite's entry points, writing the
// compiled artifact into outDir. A succeeding compiler must be silent on
// its diagnostic stream.
func (s *compileStep) Compile(ctx context.Context, suite, outDir m.Path, cfg m.Config) *m.CompileError {
	if !s.fs.Exists(outDir) {
		// Creation failures surface below through the --output path check.
		_ = s.fs.CreateDir(outDir)
	} else if !s.fs.IsDir(outDir) {
		return &m.CompileError{Kind: m.OutDirNotADirectory}
	}

	if !s.fs.Exists(suite.Join(m.DescriptorFile)) {
		return &m.CompileError{Kind: m.CompileSuiteDoesNotExist}
	}

	targets, cerr := s.resolveTargets(suite)
	if cerr != nil {
		return cerr
	}

	compiler, err := s.invoker.LookPath(cfg.Compiler)
	if err != nil {
		return &m.CompileError{Kind: m.CompilerNotFound, Err: err}
	}

	// The output path is absolute so the suite-relative working directory
	// does not affect where the artifact lands.
	absOut, err := s.fs.Abs(outDir)
	if err != nil {
		return &m.CompileError{Kind: m.CompileProcessLaunchFailed, Err: err}
	}

	args := append([]string{"make"}, targets...)
	args = append(args, cfg.CompilerArgs...)
	args = append(args, "--output", string(absOut.Join(m.CompiledFile)))

	spec := adapter.InvocationSpec{
		Exe:  compiler,
		Args: args,
		Dir:  suite,
	}

	if home, ok := os.LookupEnv(toolchainHomeEnv); ok {
		spec.Env = []string{toolchainHomeEnv + "=" + home}
	}

	slog.Debug("invoking compiler", "suite", suite, "targets", targets)

	output, err := s.invoker.Invoke(ctx, spec)
	if err != nil {
		return &m.CompileError{Kind: m.CompileProcessLaunchFailed, Err: err}
	}

	if !output.Success() {
		return &m.CompileError{Kind: m.CompilerReportedFailure, Output: &output}
	}

	if len(output.Stderr) > 0 {
		return &m.CompileError{Kind: m.UnexpectedDiagnosticOutput, Output: &output}
	}

	return nil
}

// resolveTargets reads the targets file if present, defaulting to the
// conventional single entry point otherwise. Blank lines are skipped.
func (s *compileStep) resolveTargets(suite m.Path) ([]string, *m.CompileError) {
	targetsPath := suite.Join(m.TargetsFile)
	if !s.fs.Exists(targetsPath) {
		return []string{m.DefaultTarget}, nil
	}

	data, err := s.fs.ReadFile(targetsPath)
	if err != nil {
		return nil, &m.CompileError{Kind: m.ReadingTargetsFailed, Err: err}
	}

	var targets []string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			targets = append(targets, line)
		}
	}

	if len(targets) == 0 {
		return []string{m.DefaultTarget}, nil
	}

	return targets, nil
}
