package filesystem

import "errors"

var (
	// ErrInputRootUnusable occurs when the input root cannot be accessed.
	ErrInputRootUnusable = errors.New("input root is not accessible")

	// ErrInputRootNotDir occurs when the input root is not a directory.
	ErrInputRootNotDir = errors.New("input root is not a directory")

	// ErrOutsideInputRoot occurs when a path is mapped that does not reside
	// below the input root.
	ErrOutsideInputRoot = errors.New("path is outside of the input root")

	// ErrNotADirectory occurs when an output directory is to be ensured, but
	// a non-directory already occupies its path.
	ErrNotADirectory = errors.New("path exists but is not a directory")

	// ErrPathIsRelative occurs when a root path is given as relative rather
	// than absolute.
	ErrPathIsRelative = errors.New("path is relative")
)
