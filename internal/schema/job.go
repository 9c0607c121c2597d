package schema

import (
	"time"
)

// Job is a single schema file that is to be passed to the compiler. It is
// meant to be passed by reference (pointer).
type Job struct {
	SchemaPath string
	RelPath    string
	OutputDir  string
	Size       int64
	Digest     string
}

// Invocation is a fully resolved compiler command line.
type Invocation struct {
	Path string
	Args []string
}

// Argv returns the full argument vector including the compiler path.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Path)
	argv = append(argv, i.Args...)

	return argv
}

// Status is the outcome category of a processed [Job].
type Status int

const (
	// StatusPending is the zero value for a not yet processed [Job].
	StatusPending Status = iota

	// StatusGenerated is a [Job] where the compiler exited successfully.
	StatusGenerated

	// StatusUpToDate is a [Job] that was skipped in incremental mode.
	StatusUpToDate

	// StatusFailed is a [Job] where the compiler could not be started,
	// exited non-zero or timed out.
	StatusFailed

	// StatusDryRun is a [Job] where the invocation was only logged.
	StatusDryRun
)

func (s Status) String() string {
	switch s {
	case StatusGenerated:
		return "generated"
	case StatusUpToDate:
		return "up-to-date"
	case StatusFailed:
		return "failed"
	case StatusDryRun:
		return "dry-run"
	case StatusPending:
		return "pending"
	}

	return "unknown"
}

// Result is the outcome of a processed [Job].
type Result struct {
	Job      *Job
	Status   Status
	ExitCode int
	Lines    int
	Duration time.Duration
	Err      error
}
