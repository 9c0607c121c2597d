package compiler

import "errors"

var (
	// ErrCompilerNotFound occurs when the compiler could not be started,
	// usually because it does not exist at the configured path or is not
	// executable.
	ErrCompilerNotFound = errors.New("compiler could not be started")

	// ErrCompilerFailed occurs when the compiler exited with a non-zero exit
	// status.
	ErrCompilerFailed = errors.New("compiler exited with failure")

	// ErrCompilerTimeout occurs when the compiler did not exit within the
	// configured per-invocation timeout.
	ErrCompilerTimeout = errors.New("compiler timed out")
)
