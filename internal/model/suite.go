// Package model holds the core data types shared across torture's layers.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Join appends path elements to p.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Well-known files inside a suite directory. A directory is a compilable
// suite iff it contains DescriptorFile.
const (
	// DescriptorFile marks a directory as an Elm application or package.
	DescriptorFile = "elm.json"

	// TargetsFile optionally lists entry-point modules, one per line.
	TargetsFile = "targets.txt"

	// ExpectedOutputFile holds the JSON value the compiled program must produce.
	ExpectedOutputFile = "output.json"

	// BuildCacheDir is the compiler's per-suite cache, deletable on request.
	BuildCacheDir = "elm-stuff"
)

// Artifacts written into the output directory.
const (
	// CompiledFile is the name the compiler output is written under; the
	// harness requires it by this name.
	CompiledFile = "elm.js"

	// HarnessFile is the generated driver script the runtime executes.
	HarnessFile = "harness.js"
)

// DefaultTarget is the entry point compiled when no targets file exists.
const DefaultTarget = "Main.elm"
