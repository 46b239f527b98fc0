package model

import (
	"os"
)

// OutDirState distinguishes who owns the output directory's lifetime.
type OutDirState int

const (
	// OutDirProvided means the caller supplied the path and owns it; torture
	// never deletes it.
	OutDirProvided OutDirState = iota

	// OutDirTemporary means torture created the directory and deletes it on
	// Cleanup unless it is promoted first.
	OutDirTemporary

	// OutDirPersistent is a promoted Temporary: deletion is relinquished to
	// the user so build artifacts stay inspectable after a failure.
	OutDirPersistent
)

// String returns a short label for the state.
func (s OutDirState) String() string {
	switch s {
	case OutDirProvided:
		return "provided"
	case OutDirTemporary:
		return "temporary"
	case OutDirPersistent:
		return "persistent"
	}

	return "unknown"
}

// OutDir is the tri-state ownership record for the directory that receives
// build artifacts. A Temporary may transition to Persistent at most once
// and never reverts; Provided never changes state.
type OutDir struct {
	state OutDirState
	path  Path
}

// ProvidedOutDir wraps a caller-owned directory path.
func ProvidedOutDir(path Path) *OutDir {
	return &OutDir{state: OutDirProvided, path: path}
}

// TempOutDir creates a fresh uniquely-named directory under the system
// scratch location and takes ownership of it. Failure here indicates an
// unusable environment, not a suite defect.
func TempOutDir() (*OutDir, error) {
	dir, err := os.MkdirTemp("", "torture-")
	if err != nil {
		return nil, err
	}

	return &OutDir{state: OutDirTemporary, path: Path(dir)}, nil
}

// Path returns the directory's location regardless of state.
func (d *OutDir) Path() Path {
	return d.path
}

// State returns the current ownership state.
func (d *OutDir) State() OutDirState {
	return d.state
}

// Promote converts a Temporary directory to Persistent so it survives
// Cleanup. It is idempotent and a no-op on Provided directories.
func (d *OutDir) Promote() {
	if d.state == OutDirTemporary {
		d.state = OutDirPersistent
	}
}

// Cleanup deletes the directory if and only if it is still Temporary.
func (d *OutDir) Cleanup() error {
	if d.state != OutDirTemporary {
		return nil
	}

	return os.RemoveAll(string(d.path))
}
