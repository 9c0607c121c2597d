// Package filesystem implements the discovery of schema files below an input
// root and the mirroring of the visited directory structure below an output
// root.
package filesystem

import (
	"io/fs"
	"log/slog"
	"os"
)

// DirPerms are the permissions for directories created below the output root.
const DirPerms = 0o755

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	Open(name string) (*os.File, error)
}

type unixProvider interface {
	Mkdir(path string, mode uint32) error
}

type fsWalker interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// Handler is the principal implementation for the filesystem services.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
	walkHandler fsWalker
	logger      *slog.Logger
}

// NewHandler returns a pointer to a new filesystem [Handler]. A nil logger
// falls back to [slog.Default].
func NewHandler(osHandler osProvider, unixHandler unixProvider, walkHandler fsWalker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		walkHandler: walkHandler,
		logger:      logger,
	}
}

// Open opens the named file for reading.
func (f *Handler) Open(name string) (*os.File, error) {
	return f.osHandler.Open(name)
}
