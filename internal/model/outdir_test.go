package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempOutDir_CreatesDirectory(t *testing.T) {
	dir, err := TempOutDir()
	require.NoError(t, err)

	defer func() { _ = dir.Cleanup() }()

	assert.Equal(t, OutDirTemporary, dir.State())
	assert.DirExists(t, string(dir.Path()))
	assert.Contains(t, filepath.Base(string(dir.Path())), "torture-")
}

func TestOutDir_CleanupRemovesTemporary(t *testing.T) {
	dir, err := TempOutDir()
	require.NoError(t, err)

	require.NoError(t, dir.Cleanup())
	assert.NoDirExists(t, string(dir.Path()))
}

func TestOutDir_PromoteIsIdempotent(t *testing.T) {
	dir, err := TempOutDir()
	require.NoError(t, err)

	defer func() { _ = os.RemoveAll(string(dir.Path())) }()

	path := dir.Path()

	dir.Promote()
	assert.Equal(t, OutDirPersistent, dir.State())
	assert.Equal(t, path, dir.Path())

	dir.Promote()
	assert.Equal(t, OutDirPersistent, dir.State())
	assert.Equal(t, path, dir.Path())
}

func TestOutDir_PromotedSurvivesCleanup(t *testing.T) {
	dir, err := TempOutDir()
	require.NoError(t, err)

	defer func() { _ = os.RemoveAll(string(dir.Path())) }()

	dir.Promote()

	require.NoError(t, dir.Cleanup())
	assert.DirExists(t, string(dir.Path()))
}

func TestOutDir_ProvidedIsNeverDeletedOrPromoted(t *testing.T) {
	provided := t.TempDir()

	dir := ProvidedOutDir(Path(provided))
	assert.Equal(t, OutDirProvided, dir.State())

	dir.Promote()
	assert.Equal(t, OutDirProvided, dir.State())
	assert.Equal(t, Path(provided), dir.Path())

	require.NoError(t, dir.Cleanup())
	assert.DirExists(t, provided)
}
