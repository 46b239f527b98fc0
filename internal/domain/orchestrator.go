package domain

import (
	"context"
	"fmt"
	"log/slog"

	"torture.dev/pkg/torture/internal/adapter"
	m "torture.dev/pkg/torture/internal/model"
	"torture.dev/pkg/torture/pkg"
)

// RunOptions tunes one suite's pipeline run.
type RunOptions struct {
	// ProvidedOutDir is a caller-owned output directory. When empty, a
	// Temporary directory is created and cleaned up unless promoted.
	ProvidedOutDir m.Path

	// ClearBuildCache deletes the suite's build cache before compiling.
	ClearBuildCache bool
}

// Orchestrator sequences one suite through validation, output directory
// acquisition, compile, run and failure classification.
//
// The returned error is reserved for unrecoverable environment problems
// (build-cache clearing failures, temp directory creation failures); every
// suite-level failure is classified into the SuiteOutcome instead.
type Orchestrator interface {
	CompileAndRun(ctx context.Context, suite m.Path, cfg m.Config, opts RunOptions) (m.SuiteOutcome, error)
}

type orchestrator struct {
	fs      adapter.SuiteFS
	compile CompileStep
	run     RunStep
}

// NewOrchestrator constructs an Orchestrator from the pipeline steps.
func NewOrchestrator(fs adapter.SuiteFS, compile CompileStep, run RunStep) Orchestrator {
	return &orchestrator{fs: fs, compile: compile, run: run}
}

func (o *orchestrator) CompileAndRun(ctx context.Context, suite m.Path, cfg m.Config, opts RunOptions) (m.SuiteOutcome, error) {
	if !o.fs.Exists(suite) {
		return m.SuiteOutcome{Kind: m.SuiteNotExist}, nil
	}

	if !o.fs.IsDir(suite) {
		return m.SuiteOutcome{Kind: m.SuiteNotDir}, nil
	}

	if !o.fs.Exists(suite.Join(m.DescriptorFile)) {
		return m.SuiteOutcome{Kind: m.SuiteNotElm}, nil
	}

	// Computed once, before any invocation; attached to every failure below.
	allowed, err := o.failureAllowed(suite, cfg.AllowedFailures)
	if err != nil {
		return m.SuiteOutcome{}, err
	}

	if opts.ClearBuildCache {
		// RemoveAll treats a missing cache as success; anything else is an
		// environment problem and aborts the whole batch.
		if err := o.fs.RemoveAll(suite.Join(m.BuildCacheDir)); err != nil {
			return m.SuiteOutcome{}, fmt.Errorf("clearing %s of suite %s: %w", m.BuildCacheDir, suite, err)
		}
	}

	outDir, err := o.acquireOutDir(opts.ProvidedOutDir)
	if err != nil {
		return m.SuiteOutcome{}, fmt.Errorf("creating temporary output directory: %w", err)
	}

	defer func() {
		if cleanupErr := outDir.Cleanup(); cleanupErr != nil {
			slog.Error("failed to clean up output directory", "path", outDir.Path(), "error", cleanupErr)
		}
	}()

	if cerr := o.compile.Compile(ctx, suite, outDir.Path(), cfg); cerr != nil {
		return m.SuiteOutcome{Kind: m.CompileFailure, Allowed: allowed, Compile: cerr}, nil
	}

	if rerr := o.run.Run(ctx, suite, outDir.Path(), cfg); rerr != nil {
		// Keep the artifacts for post-mortem inspection.
		outDir.Promote()
		o.dumpForensics(outDir, rerr)

		return m.SuiteOutcome{Kind: m.RunFailure, Allowed: allowed, Run: rerr, OutDir: outDir}, nil
	}

	if allowed {
		return m.SuiteOutcome{Kind: m.ExpectedFailure, Allowed: true}, nil
	}

	return m.SuiteOutcome{Kind: m.Passed}, nil
}

// failureAllowed reports whether the suite same-file-matches any configured
// allowed-failure path that currently exists on disk.
func (o *orchestrator) failureAllowed(suite m.Path, allowedFailures []m.Path) (bool, error) {
	for _, candidate := range allowedFailures {
		if !o.fs.Exists(candidate) {
			continue
		}

		same, err := o.fs.SameFile(suite, candidate)
		if err != nil {
			return false, fmt.Errorf("comparing %s and %s: %w", suite, candidate, err)
		}

		if same {
			return true, nil
		}
	}

	return false, nil
}

func (o *orchestrator) acquireOutDir(provided m.Path) (*m.OutDir, error) {
	if provided != "" {
		return m.ProvidedOutDir(provided), nil
	}

	return m.TempOutDir()
}

// dumpForensics writes the captured process result next to the artifacts in
// the promoted output directory. Dump failures are logged, not propagated;
// the classified outcome already carries the full output.
func (o *orchestrator) dumpForensics(outDir *m.OutDir, rerr *m.RunError) {
	if rerr.Output == nil {
		return
	}

	if err := pkg.DumpProcessOutput(string(outDir.Path()), *rerr.Output); err != nil {
		slog.Error("failed to dump process output", "path", outDir.Path(), "error", err)
	}
}
