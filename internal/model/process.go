package model

// ProcessOutput captures everything observable about one finished child
// process: its exit code and both streams as raw bytes.
type ProcessOutput struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with code zero.
func (o ProcessOutput) Success() bool {
	return o.ExitCode == 0
}
