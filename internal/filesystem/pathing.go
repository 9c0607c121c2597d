package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelativePath returns path relative to the input root, "." for the input
// root itself. A path escaping the input root results in an
// [ErrOutsideInputRoot].
func RelativePath(inputRoot string, path string) (string, error) {
	if !filepath.IsAbs(inputRoot) {
		return "", fmt.Errorf("(fs-rel) %w: %s", ErrPathIsRelative, inputRoot)
	}

	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("(fs-rel) %w: %s", ErrPathIsRelative, path)
	}

	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", fmt.Errorf("(fs-rel) failed to rel: %w", err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("(fs-rel) %w: %s", ErrOutsideInputRoot, path)
	}

	return rel, nil
}

// MapOutputDir returns the directory below the output root that is congruent
// to dir below the input root.
func MapOutputDir(inputRoot string, outputRoot string, dir string) (string, error) {
	rel, err := RelativePath(inputRoot, dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(outputRoot, rel), nil
}

// isWithin returns if path equals base or resides somewhere below it.
func isWithin(base string, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
