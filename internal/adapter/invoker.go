// Package adapter contains the infrastructure adapters for the torture CLI.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"

	m "torture.dev/pkg/torture/internal/model"
)

// InvocationSpec describes one external command invocation.
type InvocationSpec struct {
	// Exe is the resolved path of the executable.
	Exe string

	// Args are the command arguments, excluding the executable name.
	Args []string

	// Dir is the working directory for the invocation.
	Dir m.Path

	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// CommandInvoker abstracts running external executables so the pipeline
// steps can be tested without spawning real processes. Invocations block
// until the child exits; callers wanting bounded latency must cancel ctx.
type CommandInvoker interface {
	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)

	// Invoke runs the command and captures exit status and both streams.
	// A non-zero exit is reported through ProcessOutput, not err; err is
	// reserved for failures to launch the process at all.
	Invoke(ctx context.Context, spec InvocationSpec) (m.ProcessOutput, error)
}

// LocalCommandInvoker runs commands with os/exec.
type LocalCommandInvoker struct{}

// NewLocalCommandInvoker constructs a LocalCommandInvoker.
func NewLocalCommandInvoker() *LocalCommandInvoker {
	return &LocalCommandInvoker{}
}

// LookPath resolves an executable name against PATH.
func (a *LocalCommandInvoker) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Invoke runs the command and captures exit status, stdout and stderr.
func (a *LocalCommandInvoker) Invoke(ctx context.Context, spec InvocationSpec) (m.ProcessOutput, error) {
	cmd := exec.CommandContext(ctx, spec.Exe, spec.Args...)
	cmd.Dir = string(spec.Dir)

	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("invoking command", "exe", spec.Exe, "args", spec.Args, "dir", spec.Dir)

	err := cmd.Run()

	output := m.ProcessOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			slog.Error("command failed to launch", "exe", spec.Exe, "error", err)
			return m.ProcessOutput{}, err
		}

		output.ExitCode = exitErr.ExitCode()
	}

	slog.Debug("command finished", "exe", spec.Exe, "exit", output.ExitCode)

	return output, nil
}
