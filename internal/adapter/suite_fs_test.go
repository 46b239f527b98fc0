package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "torture.dev/pkg/torture/internal/model"
)

func TestLocalSuiteFS_ExistsAndIsDir(t *testing.T) {
	fs := NewLocalSuiteFS()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	assert.True(t, fs.Exists(m.Path(dir)))
	assert.True(t, fs.IsDir(m.Path(dir)))
	assert.True(t, fs.Exists(m.Path(file)))
	assert.False(t, fs.IsDir(m.Path(file)))
	assert.False(t, fs.Exists(m.Path(filepath.Join(dir, "missing"))))
}

func TestLocalSuiteFS_SameFile(t *testing.T) {
	fs := NewLocalSuiteFS()

	dir := t.TempDir()

	same, err := fs.SameFile(m.Path(dir), m.Path(dir+string(os.PathSeparator)+"."))
	require.NoError(t, err)
	assert.True(t, same)

	other := t.TempDir()

	same, err = fs.SameFile(m.Path(dir), m.Path(other))
	require.NoError(t, err)
	assert.False(t, same)

	_, err = fs.SameFile(m.Path(dir), m.Path(filepath.Join(dir, "missing")))
	assert.Error(t, err)
}

func TestLocalSuiteFS_RemoveAllOnMissingPath(t *testing.T) {
	fs := NewLocalSuiteFS()

	assert.NoError(t, fs.RemoveAll(m.Path(filepath.Join(t.TempDir(), "missing"))))
}

func TestLocalSuiteFS_DiscoverSuites(t *testing.T) {
	fs := NewLocalSuiteFS()

	root := t.TempDir()

	makeSuite := func(name string, descriptor bool) {
		dir := filepath.Join(root, name)
		require.NoError(t, os.Mkdir(dir, 0o750))

		if descriptor {
			require.NoError(t, os.WriteFile(filepath.Join(dir, m.DescriptorFile), []byte("{}"), 0o600))
		}
	}

	makeSuite("charlie", true)
	makeSuite("alpha", true)
	makeSuite("not-a-suite", false)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray-file"), []byte("x"), 0o600))

	suites, err := fs.DiscoverSuites(m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "alpha")),
		m.Path(filepath.Join(root, "charlie")),
	}, suites)
}

func TestLocalSuiteFS_DiscoverSuitesOnMissingRoot(t *testing.T) {
	fs := NewLocalSuiteFS()

	_, err := fs.DiscoverSuites(m.Path(filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, err)
}
