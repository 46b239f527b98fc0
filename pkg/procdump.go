// Package pkg provides small utilities shared across torture.
package pkg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "torture.dev/pkg/torture/internal/model"
)

// File names used when spilling a captured process result to disk.
const (
	StatusFile = "status.txt"
	StdoutFile = "stdout.log"
	StderrFile = "stderr.log"
)

// DumpProcessOutput spills a captured process result into dir so a human
// can diagnose a failure without rerunning the suite.
func DumpProcessOutput(dir string, output m.ProcessOutput) error {
	files := []struct {
		name    string
		content []byte
	}{
		{StatusFile, []byte(fmt.Sprintf("%d\n", output.ExitCode))},
		{StdoutFile, output.Stdout},
		{StderrFile, output.Stderr},
	}

	for _, file := range files {
		path := filepath.Join(dir, file.name)

		if err := os.WriteFile(path, file.content, 0o600); err != nil {
			slog.Error("failed to write dump file", "path", path, "error", err)
			return fmt.Errorf("failed to write %s: %w", file.name, err)
		}

		slog.Debug("wrote dump file", "path", path)
	}

	return nil
}
