package validation

import "errors"

var (
	// ErrPathIsRelative occurs when a root path is provided as relative rather
	// than absolute.
	ErrPathIsRelative = errors.New("path is relative")

	// ErrInputRootMissing occurs when the input root does not exist or cannot
	// be accessed.
	ErrInputRootMissing = errors.New("input root does not exist or is not accessible")

	// ErrInputRootNotDir occurs when the input root is not a directory.
	ErrInputRootNotDir = errors.New("input root is not a directory")

	// ErrSameRoots occurs when the input and the output root are the same
	// directory, so generated files would be mixed into the schema tree.
	ErrSameRoots = errors.New("input root and output root are the same")

	// ErrOutputRootNotDir occurs when the output root exists but is not a
	// directory.
	ErrOutputRootNotDir = errors.New("output root exists but is not a directory")

	// ErrInvalidExtension occurs when the schema file extension is empty or
	// does not start with a dot.
	ErrInvalidExtension = errors.New("schema extension must start with a dot")

	// ErrInvalidLanguage occurs when the target language could not form a
	// compiler output flag.
	ErrInvalidLanguage = errors.New("target language must match [a-z0-9_]+")

	// ErrInvalidJobs occurs when fewer than one concurrent job is configured.
	ErrInvalidJobs = errors.New("jobs must be at least 1")

	// ErrInvalidTimeout occurs when a negative timeout is configured.
	ErrInvalidTimeout = errors.New("timeout must not be negative")

	// ErrCompilerMissing occurs when the compiler cannot be found.
	ErrCompilerMissing = errors.New("compiler not found")

	// ErrCompilerNotExecutable occurs when the compiler exists but cannot be
	// executed by the current user.
	ErrCompilerNotExecutable = errors.New("compiler is not executable")
)
