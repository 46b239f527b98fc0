package model

// Config holds the toolchain settings every suite run shares. It is
// read-only after initialization, so it is safe to share by reference
// across concurrent suite runs.
type Config struct {
	// Compiler is the name or path of the Elm compiler executable.
	Compiler string `yaml:"compiler"`

	// Runtime is the name or path of the JavaScript runtime executable.
	Runtime string `yaml:"runtime"`

	// CompilerArgs are extra arguments passed to every compiler invocation.
	CompilerArgs []string `yaml:"compiler_args"`

	// AllowedFailures lists suites that are permitted to fail. Paths are
	// resolved against the config file's directory at load time.
	AllowedFailures []Path `yaml:"allowed_failures"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Compiler: "elm",
		Runtime:  "node",
	}
}
