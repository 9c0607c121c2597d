package main

import "errors"

var (
	// ErrSetup occurs when a run could not be set up, e.g. due to an invalid
	// configuration or an unusable log file. It results in [exitSetup].
	ErrSetup = errors.New("setup failed")

	// ErrInvalidLogLevel occurs when an unknown log level was configured.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrConfigExists occurs when a configuration template would overwrite an
	// existing file without --force.
	ErrConfigExists = errors.New("destination exists (use --force to overwrite)")
)
