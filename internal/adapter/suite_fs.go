package adapter

import (
	"os"
	"path/filepath"
	"sort"

	m "torture.dev/pkg/torture/internal/model"
)

// SuiteFS abstracts the filesystem operations the pipeline relies on when
// reading suites and managing output directories. It hides direct `os`
// access so the domain logic can be tested without touching the disk.
type SuiteFS interface {
	// Exists reports whether the path exists at all.
	Exists(path m.Path) bool

	// IsDir reports whether the path exists and is a directory.
	IsDir(path m.Path) bool

	// CreateDir creates a single directory; the parent must exist.
	CreateDir(path m.Path) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RemoveAll removes a path and all its contents. Removing a path that
	// does not exist is not an error.
	RemoveAll(path m.Path) error

	// SameFile reports whether two paths refer to the same file on disk.
	SameFile(a, b m.Path) (bool, error)

	// Abs returns the absolute form of path.
	Abs(path m.Path) (m.Path, error)

	// DiscoverSuites returns the immediate subdirectories of root that
	// contain the project descriptor, sorted by name.
	DiscoverSuites(root m.Path) ([]m.Path, error)
}

// LocalSuiteFS is the concrete SuiteFS backed by the os package.
type LocalSuiteFS struct{}

// NewLocalSuiteFS constructs a LocalSuiteFS.
func NewLocalSuiteFS() *LocalSuiteFS {
	return &LocalSuiteFS{}
}

// Exists reports whether the path exists at all.
func (a *LocalSuiteFS) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

// IsDir reports whether the path exists and is a directory.
func (a *LocalSuiteFS) IsDir(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

// CreateDir creates a single directory.
func (a *LocalSuiteFS) CreateDir(path m.Path) error {
	return os.Mkdir(string(path), 0o750)
}

// ReadFile loads file contents from disk.
func (a *LocalSuiteFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSuiteFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// RemoveAll removes a path and all its contents.
func (a *LocalSuiteFS) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// SameFile reports whether two paths refer to the same file on disk.
func (a *LocalSuiteFS) SameFile(p, q m.Path) (bool, error) {
	infoP, err := os.Stat(string(p))
	if err != nil {
		return false, err
	}

	infoQ, err := os.Stat(string(q))
	if err != nil {
		return false, err
	}

	return os.SameFile(infoP, infoQ), nil
}

// Abs returns the absolute form of path.
func (a *LocalSuiteFS) Abs(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// DiscoverSuites returns the immediate subdirectories of root that contain
// the project descriptor, sorted by name.
func (a *LocalSuiteFS) DiscoverSuites(root m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(root))
	if err != nil {
		return nil, err
	}

	var suites []m.Path

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		candidate := root.Join(entry.Name())
		if a.Exists(candidate.Join(m.DescriptorFile)) {
			suites = append(suites, candidate)
		}
	}

	sort.Slice(suites, func(i, j int) bool { return suites[i] < suites[j] })

	return suites, nil
}
