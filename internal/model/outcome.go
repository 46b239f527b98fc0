package model

import "fmt"

// CompileErrorKind enumerates every way the compile step can fail.
type CompileErrorKind int

const (
	// OutDirNotADirectory means the output path exists but is not a directory.
	OutDirNotADirectory CompileErrorKind = iota

	// CompileSuiteDoesNotExist means the suite lacks the project descriptor.
	CompileSuiteDoesNotExist

	// ReadingTargetsFailed means the targets file exists but could not be read.
	ReadingTargetsFailed

	// CompilerNotFound means the compiler executable could not be resolved.
	CompilerNotFound

	// CompileProcessLaunchFailed means the compiler process failed to start.
	CompileProcessLaunchFailed

	// CompilerReportedFailure means the compiler exited non-zero.
	CompilerReportedFailure

	// UnexpectedDiagnosticOutput means the compiler succeeded but wrote to
	// its diagnostic stream. A succeeding compiler must be silent on stderr.
	UnexpectedDiagnosticOutput
)

// String returns a stable identifier for the kind.
func (k CompileErrorKind) String() string {
	switch k {
	case OutDirNotADirectory:
		return "out dir is not a directory"
	case CompileSuiteDoesNotExist:
		return "suite is not an elm application or package"
	case ReadingTargetsFailed:
		return "reading targets.txt failed"
	case CompilerNotFound:
		return "compiler not found"
	case CompileProcessLaunchFailed:
		return "compiler process could not be launched"
	case CompilerReportedFailure:
		return "compilation failed"
	case UnexpectedDiagnosticOutput:
		return "compiler sent output to stderr"
	}

	return "unknown compile error"
}

// CompileError is the immutable result of one failed compile attempt.
type CompileError struct {
	Kind CompileErrorKind

	// Output holds the captured process result for kinds produced after the
	// compiler was invoked.
	Output *ProcessOutput

	// Err holds the underlying cause for filesystem and lookup kinds.
	Err error
}

// Error implements error.
func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return e.Kind.String()
}

// Unwrap exposes the underlying cause, if any.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// RunErrorKind enumerates every way the run step can fail.
type RunErrorKind int

const (
	// RunSuiteDoesNotExist means the suite lacks the project descriptor.
	RunSuiteDoesNotExist RunErrorKind = iota

	// CannotFindExpectedOutput means the expected-output file is missing.
	CannotFindExpectedOutput

	// ExpectedOutputNotUtf8 means the expected-output file is not UTF-8 text.
	ExpectedOutputNotUtf8

	// RuntimeNotFound means the runtime executable could not be resolved.
	RuntimeNotFound

	// WritingHarnessFailed means the generated harness could not be written.
	WritingHarnessFailed

	// RuntimeProcessFailed means the runtime process failed to start.
	RuntimeProcessFailed

	// RuntimeReportedFailure means the runtime exited non-zero.
	RuntimeReportedFailure

	// UnexpectedOutputProduced means the program wrote to stdout, or wrote
	// something other than a benign optimization notice to stderr. The
	// program must communicate solely through the pass/fail protocol.
	UnexpectedOutputProduced
)

// String returns a stable identifier for the kind.
func (k RunErrorKind) String() string {
	switch k {
	case RunSuiteDoesNotExist:
		return "suite is not an elm application or package"
	case CannotFindExpectedOutput:
		return "cannot find output.json"
	case ExpectedOutputNotUtf8:
		return "output.json is not valid utf-8"
	case RuntimeNotFound:
		return "runtime not found"
	case WritingHarnessFailed:
		return "writing harness failed"
	case RuntimeProcessFailed:
		return "runtime process could not be launched"
	case RuntimeReportedFailure:
		return "runtime reported failure"
	case UnexpectedOutputProduced:
		return "unexpected output produced"
	}

	return "unknown run error"
}

// RunError is the immutable result of one failed run attempt.
type RunError struct {
	Kind   RunErrorKind
	Output *ProcessOutput
	Err    error
}

// Error implements error.
func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return e.Kind.String()
}

// Unwrap exposes the underlying cause, if any.
func (e *RunError) Unwrap() error {
	return e.Err
}

// OutcomeKind classifies the terminal state of one suite's pipeline run.
type OutcomeKind int

const (
	// Passed means compile and run both succeeded for a suite that was not
	// expected to fail.
	Passed OutcomeKind = iota

	// SuiteNotExist means the suite path does not exist.
	SuiteNotExist

	// SuiteNotDir means the suite path is not a directory.
	SuiteNotDir

	// SuiteNotElm means the suite directory lacks the project descriptor.
	SuiteNotElm

	// CompileFailure means the compile step failed; the run step was never
	// attempted.
	CompileFailure

	// RunFailure means the run step failed; the output directory has been
	// promoted so its artifacts stay inspectable.
	RunFailure

	// ExpectedFailure means a suite pre-declared as allowed to fail passed
	// both steps. An allowed suite that passes is anomalous, not a success.
	ExpectedFailure
)

// String returns a short label for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "passed"
	case SuiteNotExist:
		return "suite does not exist"
	case SuiteNotDir:
		return "suite is not a directory"
	case SuiteNotElm:
		return "suite is not an elm application or package"
	case CompileFailure:
		return "compile failure"
	case RunFailure:
		return "run failure"
	case ExpectedFailure:
		return "expected failure"
	}

	return "unknown"
}

// SuiteOutcome is the terminal classification of one suite's pipeline run.
// Only the variant-relevant fields are set: Compile on CompileFailure,
// Run and OutDir on RunFailure. Allowed is computed once per suite before
// any invocation and attached to every failure for that suite.
type SuiteOutcome struct {
	Kind    OutcomeKind
	Allowed bool
	Compile *CompileError
	Run     *RunError
	OutDir  *OutDir
}

// Failed reports whether the outcome counts against the batch: a
// non-allowed compile or run failure, or an invalid suite. An allowed
// failure and an ExpectedFailure do not mark the batch as failed.
func (o SuiteOutcome) Failed() bool {
	switch o.Kind {
	case Passed, ExpectedFailure:
		return false
	case CompileFailure, RunFailure:
		return !o.Allowed
	case SuiteNotExist, SuiteNotDir, SuiteNotElm:
		return true
	}

	return true
}

// Exit codes the outermost caller maps outcomes onto.
const (
	ExitSuccess      = 0
	ExitCompileStage = 1
	ExitRunStage     = 2
)

// ExitCode maps the outcome onto the tool's process exit code contract:
// zero on success, distinct codes for compile-stage and run-stage errors.
func (o SuiteOutcome) ExitCode() int {
	if !o.Failed() {
		return ExitSuccess
	}

	if o.Kind == RunFailure {
		return ExitRunStage
	}

	return ExitCompileStage
}

// BatchEntry pairs one suite with its outcome, in batch input order.
type BatchEntry struct {
	Suite   Path
	Outcome SuiteOutcome
}
