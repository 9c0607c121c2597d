package schema

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Stat wraps around [os.Stat].
func (*OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Open wraps around [os.Open].
func (*OS) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Mkdir wraps around [unix.Mkdir].
func (*Unix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

// Access wraps around [unix.Access].
func (*Unix) Access(path string, mode uint32) error {
	return unix.Access(path, mode)
}

// FileWalker is an implementation wrapping [filepath.WalkDir].
type FileWalker struct{}

// WalkDir wraps around [filepath.WalkDir].
func (*FileWalker) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// Exec is an implementation wrapping process execution functions.
type Exec struct{}

// CommandContext wraps around [exec.CommandContext].
func (*Exec) CommandContext(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, arg...)
}

// LookPath wraps around [exec.LookPath].
func (*Exec) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
