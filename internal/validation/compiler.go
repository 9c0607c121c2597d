package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckCompiler resolves the compiler location and checks that it can be
// executed. A bare name is looked up in the search path, anything containing
// a path separator is checked in place. The resolved path is returned.
func (v *Handler) CheckCompiler(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("(validation-compiler) %w: empty path", ErrCompilerMissing)
	}

	if !strings.ContainsRune(path, filepath.Separator) {
		resolved, err := v.execHandler.LookPath(path)
		if err != nil {
			return "", fmt.Errorf("(validation-compiler) %w: %w", ErrCompilerMissing, err)
		}

		return resolved, nil
	}

	info, err := v.osHandler.Stat(path)
	if err != nil {
		return "", fmt.Errorf("(validation-compiler) %w: %w", ErrCompilerMissing, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("(validation-compiler) %w: %s is a directory", ErrCompilerNotExecutable, path)
	}

	if err := v.unixHandler.Access(path, unix.X_OK); err != nil {
		return "", fmt.Errorf("(validation-compiler) %w: %w", ErrCompilerNotExecutable, err)
	}

	return path, nil
}
