package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"torture.dev/pkg/torture/internal/adapter"
	m "torture.dev/pkg/torture/internal/model"
)

// fakeInvoker records invocations and replays a canned result, so pipeline
// steps can be exercised without spawning real processes.
type fakeInvoker struct {
	lookPathErr error
	invokeErr   error
	output      m.ProcessOutput
	calls       []adapter.InvocationSpec
}

func (f *fakeInvoker) LookPath(name string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}

	return "/usr/bin/" + name, nil
}

func (f *fakeInvoker) Invoke(_ context.Context, spec adapter.InvocationSpec) (m.ProcessOutput, error) {
	f.calls = append(f.calls, spec)

	if f.invokeErr != nil {
		return m.ProcessOutput{}, f.invokeErr
	}

	return f.output, nil
}

// writeSuite creates a minimal compilable suite directory.
func writeSuite(t *testing.T, files map[string]string) m.Path {
	t.Helper()

	dir := t.TempDir()

	if _, ok := files[m.DescriptorFile]; !ok {
		files[m.DescriptorFile] = `{"type":"application"}`
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return m.Path(dir)
}

func testConfig() m.Config {
	return m.DefaultConfig()
}
