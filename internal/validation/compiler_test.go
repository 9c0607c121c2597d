package validation

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertwitch/protogen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type fakeFileInfo struct {
	dir bool
}

func (f *fakeFileInfo) Name() string       { return "fake" }
func (f *fakeFileInfo) Size() int64        { return 0 }
func (f *fakeFileInfo) Mode() fs.FileMode  { return 0o755 }
func (f *fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f *fakeFileInfo) IsDir() bool        { return f.dir }
func (f *fakeFileInfo) Sys() any           { return nil }

// TestCheckCompiler_Success_Path tests an executable compiler path.
func TestCheckCompiler_Success_Path(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "protoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec

	handler := NewHandler(&schema.OS{}, &schema.Unix{}, newMockExecProvider(t))

	resolved, err := handler.CheckCompiler(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

// TestCheckCompiler_Success_SearchPath tests that a bare name is looked up.
func TestCheckCompiler_Success_SearchPath(t *testing.T) {
	t.Parallel()

	execMock := newMockExecProvider(t)
	execMock.EXPECT().LookPath("protoc").Return("/usr/bin/protoc", nil).Once()

	handler := NewHandler(newMockOsProvider(t), newMockUnixProvider(t), execMock)

	resolved, err := handler.CheckCompiler("protoc")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/protoc", resolved)
}

// TestCheckCompiler_Fail_SearchPath tests a bare name that is not found.
func TestCheckCompiler_Fail_SearchPath(t *testing.T) {
	t.Parallel()

	execMock := newMockExecProvider(t)
	execMock.EXPECT().LookPath("protoc").Return("", exec.ErrNotFound).Once()

	handler := NewHandler(newMockOsProvider(t), newMockUnixProvider(t), execMock)

	_, err := handler.CheckCompiler("protoc")
	require.ErrorIs(t, err, ErrCompilerMissing)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

// TestCheckCompiler_Fail_Empty tests an empty compiler path.
func TestCheckCompiler_Fail_Empty(t *testing.T) {
	t.Parallel()

	handler := NewHandler(newMockOsProvider(t), newMockUnixProvider(t), newMockExecProvider(t))

	_, err := handler.CheckCompiler("")
	require.ErrorIs(t, err, ErrCompilerMissing)
}

// TestCheckCompiler_Fail_Missing tests a compiler path that does not exist.
func TestCheckCompiler_Fail_Missing(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.OS{}, newMockUnixProvider(t), newMockExecProvider(t))

	_, err := handler.CheckCompiler(filepath.Join(t.TempDir(), "protoc"))
	require.ErrorIs(t, err, ErrCompilerMissing)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

// TestCheckCompiler_Fail_Directory tests a compiler path that is a directory.
func TestCheckCompiler_Fail_Directory(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.OS{}, newMockUnixProvider(t), newMockExecProvider(t))

	_, err := handler.CheckCompiler(t.TempDir())
	require.ErrorIs(t, err, ErrCompilerNotExecutable)
}

// TestCheckCompiler_Fail_NotExecutable tests a compiler that fails the access
// check.
func TestCheckCompiler_Fail_NotExecutable(t *testing.T) {
	t.Parallel()

	osMock := newMockOsProvider(t)
	osMock.EXPECT().Stat("/opt/homebrew/bin/protoc").Return(&fakeFileInfo{}, nil).Once()

	unixMock := newMockUnixProvider(t)
	unixMock.EXPECT().Access("/opt/homebrew/bin/protoc", uint32(unix.X_OK)).Return(unix.EACCES).Once()

	handler := NewHandler(osMock, unixMock, newMockExecProvider(t))

	_, err := handler.CheckCompiler("/opt/homebrew/bin/protoc")
	require.ErrorIs(t, err, ErrCompilerNotExecutable)
	require.ErrorIs(t, err, unix.EACCES)
}
