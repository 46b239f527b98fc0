package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "torture.dev/pkg/torture/internal/model"
)

func TestYAMLReportStore_RoundTrip(t *testing.T) {
	store := NewYAMLReportStore()

	entries := []m.BatchEntry{
		{Suite: "suites/pass", Outcome: m.SuiteOutcome{Kind: m.Passed}},
		{Suite: "suites/broken", Outcome: m.SuiteOutcome{
			Kind:    m.CompileFailure,
			Allowed: true,
			Compile: &m.CompileError{Kind: m.CompilerReportedFailure},
		}},
	}

	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))

	require.NoError(t, store.SaveReport(path, entries))

	report, err := store.LoadReport(path)
	require.NoError(t, err)

	assert.Equal(t, reportVersion, report.Version)
	require.Len(t, report.Entries, 2)

	assert.Equal(t, "suites/pass", report.Entries[0].Suite)
	assert.Equal(t, "passed", report.Entries[0].Outcome)
	assert.False(t, report.Entries[0].Allowed)

	assert.Equal(t, "compile failure", report.Entries[1].Outcome)
	assert.True(t, report.Entries[1].Allowed)
	assert.Equal(t, "compilation failed", report.Entries[1].Reason)
}

func TestYAMLReportStore_RunFailureRecordsOutDir(t *testing.T) {
	store := NewYAMLReportStore()

	outDir := m.ProvidedOutDir("/kept/artifacts")

	entries := []m.BatchEntry{
		{Suite: "suites/crash", Outcome: m.SuiteOutcome{
			Kind:   m.RunFailure,
			Run:    &m.RunError{Kind: m.RuntimeReportedFailure},
			OutDir: outDir,
		}},
	}

	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))

	require.NoError(t, store.SaveReport(path, entries))

	report, err := store.LoadReport(path)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, "/kept/artifacts", report.Entries[0].OutDir)
	assert.Equal(t, "runtime reported failure", report.Entries[0].Reason)
}

func TestYAMLReportStore_LoadMissingFile(t *testing.T) {
	store := NewYAMLReportStore()

	_, err := store.LoadReport(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}
