// Package controller provides output controllers for reporting suite results.
package controller

import (
	"os"

	m "torture.dev/pkg/torture/internal/model"
)

// UI is the interface batch and single-suite commands report through.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// BatchStarting announces the suites about to run, in order.
	BatchStarting(suites []m.Path)

	// SuiteStarted announces that a suite's pipeline has begun.
	SuiteStarted(suite m.Path)

	// SuiteFinished reports one classified outcome.
	SuiteFinished(entry m.BatchEntry)

	// BatchFinished renders the aggregate summary and releases the UI.
	BatchFinished(entries []m.BatchEntry)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
