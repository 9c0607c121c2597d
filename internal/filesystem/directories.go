package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// EnsureDirectory makes sure that the directory at path exists, creating any
// missing ancestors from the top down. Directories that already exist are
// not an error, which makes repeated runs over the same tree idempotent. The
// paths of all directories that were actually created are returned.
func (f *Handler) EnsureDirectory(path string) ([]string, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("(fs-mkdir) %w: %s", ErrPathIsRelative, path)
	}

	var missing []string

	current := filepath.Clean(path)
	for {
		info, err := f.osHandler.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return nil, fmt.Errorf("(fs-mkdir) %w: %s", ErrNotADirectory, current)
			}

			break
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(fs-mkdir) failed to stat %s: %w", current, err)
		}

		missing = append(missing, current)

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	created := []string{}

	for i := len(missing) - 1; i >= 0; i-- {
		dir := missing[i]

		if err := f.unixHandler.Mkdir(dir, DirPerms); err != nil {
			if errors.Is(err, fs.ErrExist) {
				// Lost a race against another creator, fine if it is a directory.
				if info, serr := f.osHandler.Stat(dir); serr == nil && info.IsDir() {
					continue
				}

				return created, fmt.Errorf("(fs-mkdir) %w: %s", ErrNotADirectory, dir)
			}

			return created, fmt.Errorf("(fs-mkdir) failed to create %s: %w", dir, err)
		}

		created = append(created, dir)
	}

	return created, nil
}
