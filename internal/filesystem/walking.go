package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/desertwitch/protogen/internal/schema"
)

// Enumerate walks the input root in lexical order and returns every visited
// directory, each carrying the [schema.Job]s for its files ending in ext. The
// output root is not descended into when it resides below the input root.
//
// An inaccessible input root is an error, any other unreadable path is logged
// and skipped.
func (f *Handler) Enumerate(ctx context.Context, inputRoot string, outputRoot string, ext string) ([]*schema.Directory, error) {
	if !filepath.IsAbs(inputRoot) {
		return nil, fmt.Errorf("(fs-enum) %w: %s", ErrPathIsRelative, inputRoot)
	}
	if !filepath.IsAbs(outputRoot) {
		return nil, fmt.Errorf("(fs-enum) %w: %s", ErrPathIsRelative, outputRoot)
	}

	inputRoot = filepath.Clean(inputRoot)
	outputRoot = filepath.Clean(outputRoot)

	info, err := f.osHandler.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("(fs-enum) %w: %w", ErrInputRootUnusable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("(fs-enum) %w: %s", ErrInputRootNotDir, inputRoot)
	}

	skipOutput := outputRoot != inputRoot && isWithin(inputRoot, outputRoot)

	dirs := []*schema.Directory{}
	visited := make(map[string]*schema.Directory)

	err = f.walkHandler.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			if path == inputRoot {
				return err
			}

			f.logger.Warn("Skipped path during enumeration due to failure:",
				"path", path,
				"err", err,
			)

			return nil
		}

		if d.IsDir() {
			if skipOutput && path == outputRoot {
				return fs.SkipDir
			}

			return f.visitDirectory(inputRoot, outputRoot, path, &dirs, visited)
		}

		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		job, ok := f.visitFile(path, d)
		if !ok {
			return nil
		}

		parent, exists := visited[filepath.Dir(path)]
		if !exists {
			return nil
		}

		job.OutputDir = parent.DestPath
		job.RelPath, err = RelativePath(inputRoot, path)
		if err != nil {
			return err
		}

		parent.Files = append(parent.Files, job)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("(fs-enum) failed walking input root: %w", err)
	}

	return dirs, nil
}

func (f *Handler) visitDirectory(inputRoot string, outputRoot string, path string, dirs *[]*schema.Directory, visited map[string]*schema.Directory) error {
	rel, err := RelativePath(inputRoot, path)
	if err != nil {
		return err
	}

	dest, err := MapOutputDir(inputRoot, outputRoot, path)
	if err != nil {
		return err
	}

	dir := &schema.Directory{
		SourcePath: path,
		DestPath:   dest,
		RelPath:    rel,
	}

	*dirs = append(*dirs, dir)
	visited[path] = dir

	return nil
}

// visitFile returns a [schema.Job] for regular files and symbolic links that
// resolve to regular files.
func (f *Handler) visitFile(path string, d fs.DirEntry) (*schema.Job, bool) {
	var info fs.FileInfo
	var err error

	if d.Type()&fs.ModeSymlink != 0 {
		info, err = f.osHandler.Stat(path)
	} else {
		info, err = d.Info()
	}

	if err != nil {
		f.logger.Warn("Skipped schema file during enumeration due to failure:",
			"path", path,
			"err", err,
		)

		return nil, false
	}

	if !info.Mode().IsRegular() {
		return nil, false
	}

	return &schema.Job{
		SchemaPath: path,
		Size:       info.Size(),
	}, true
}
