package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

func (v *Handler) validateRoots(inputRoot string, outputRoot string) error {
	if !filepath.IsAbs(inputRoot) {
		return fmt.Errorf("(validation) input %w: %s", ErrPathIsRelative, inputRoot)
	}

	if !filepath.IsAbs(outputRoot) {
		return fmt.Errorf("(validation) output %w: %s", ErrPathIsRelative, outputRoot)
	}

	info, err := v.osHandler.Stat(inputRoot)
	if err != nil {
		return fmt.Errorf("(validation) %w: %w", ErrInputRootMissing, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("(validation) %w: %s", ErrInputRootNotDir, inputRoot)
	}

	if filepath.Clean(inputRoot) == filepath.Clean(outputRoot) {
		return fmt.Errorf("(validation) %w: %s", ErrSameRoots, inputRoot)
	}

	info, err = v.osHandler.Stat(outputRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("(validation) output root: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("(validation) %w: %s", ErrOutputRootNotDir, outputRoot)
	}

	return nil
}
