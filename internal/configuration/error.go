package configuration

import "errors"

var (
	// ErrConfigMissing occurs when an explicitly requested configuration file
	// does not exist.
	ErrConfigMissing = errors.New("configuration file does not exist")

	// ErrUnknownKeys occurs when a configuration file holds keys that match
	// no flag.
	ErrUnknownKeys = errors.New("unknown configuration keys")
)
