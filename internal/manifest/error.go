package manifest

import "errors"

var (
	// ErrCorrupt occurs when a manifest file cannot be parsed.
	ErrCorrupt = errors.New("manifest is corrupt")

	// ErrUnsupportedVersion occurs when a manifest file was written in an
	// unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")
)
