package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "torture.dev/pkg/torture/internal/model"
)

func TestDumpProcessOutput(t *testing.T) {
	dir := t.TempDir()

	err := DumpProcessOutput(dir, m.ProcessOutput{
		ExitCode: 2,
		Stdout:   []byte("out\n"),
		Stderr:   []byte("err\n"),
	})
	require.NoError(t, err)

	status, err := os.ReadFile(filepath.Join(dir, StatusFile))
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(status))

	stdout, err := os.ReadFile(filepath.Join(dir, StdoutFile))
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(stdout))

	stderr, err := os.ReadFile(filepath.Join(dir, StderrFile))
	require.NoError(t, err)
	assert.Equal(t, "err\n", string(stderr))
}

func TestDumpProcessOutput_MissingDirectory(t *testing.T) {
	err := DumpProcessOutput(filepath.Join(t.TempDir(), "missing"), m.ProcessOutput{})
	assert.Error(t, err)
}
