package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/protogen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("syntax = \"proto3\";\n"), 0o600))
	}
}

func newRealHandler() *Handler {
	return NewHandler(&schema.OS{}, &schema.Unix{}, &schema.FileWalker{}, nil)
}

func dirsByRel(dirs []*schema.Directory) map[string]*schema.Directory {
	m := make(map[string]*schema.Directory, len(dirs))
	for _, d := range dirs {
		m[d.RelPath] = d
	}

	return m
}

// TestEnumerate_Success_Scenario tests a matching and a non-matching file in
// two sibling directories.
func TestEnumerate_Success_Scenario(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	input := filepath.Join(base, "protos")
	output := filepath.Join(base, "gen")

	writeTree(t, input, "a/x.proto", "b/y.txt")

	dirs, err := newRealHandler().Enumerate(t.Context(), input, output, ".proto")
	require.NoError(t, err)

	require.Len(t, dirs, 3)
	assert.Equal(t, []string{".", "a", "b"}, []string{dirs[0].RelPath, dirs[1].RelPath, dirs[2].RelPath})

	byRel := dirsByRel(dirs)

	assert.Equal(t, output, byRel["."].DestPath)
	assert.Equal(t, filepath.Join(output, "a"), byRel["a"].DestPath)
	assert.Equal(t, filepath.Join(output, "b"), byRel["b"].DestPath)

	require.Len(t, byRel["a"].Files, 1)
	job := byRel["a"].Files[0]
	assert.Equal(t, filepath.Join(input, "a", "x.proto"), job.SchemaPath)
	assert.Equal(t, filepath.Join("a", "x.proto"), job.RelPath)
	assert.Equal(t, filepath.Join(output, "a"), job.OutputDir)
	assert.Positive(t, job.Size)

	assert.Empty(t, byRel["b"].Files)
	assert.Empty(t, byRel["."].Files)
}

// TestEnumerate_Success_InterleavedOrder tests that files are attributed to
// their own directory when lexical order visits a sibling directory first.
func TestEnumerate_Success_InterleavedOrder(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	input := filepath.Join(base, "protos")
	output := filepath.Join(base, "gen")

	writeTree(t, input, "a/b/inner.proto", "a/c.proto", "root.proto")

	dirs, err := newRealHandler().Enumerate(t.Context(), input, output, ".proto")
	require.NoError(t, err)

	byRel := dirsByRel(dirs)

	require.Len(t, byRel["a"].Files, 1)
	assert.Equal(t, filepath.Join("a", "c.proto"), byRel["a"].Files[0].RelPath)
	assert.Equal(t, filepath.Join(output, "a"), byRel["a"].Files[0].OutputDir)

	require.Len(t, byRel[filepath.Join("a", "b")].Files, 1)
	assert.Equal(t, filepath.Join(output, "a", "b"), byRel[filepath.Join("a", "b")].Files[0].OutputDir)

	require.Len(t, byRel["."].Files, 1)
	assert.Equal(t, output, byRel["."].Files[0].OutputDir)
}

// TestEnumerate_Success_SkipsOutputRoot tests that an output root nested in
// the input root is not descended into.
func TestEnumerate_Success_SkipsOutputRoot(t *testing.T) {
	t.Parallel()

	input := t.TempDir()
	output := filepath.Join(input, "gen")

	writeTree(t, input, "a/x.proto", "gen/a/stale.proto")

	dirs, err := newRealHandler().Enumerate(t.Context(), input, output, ".proto")
	require.NoError(t, err)

	for _, d := range dirs {
		assert.NotEqual(t, "gen", d.RelPath)
		for _, f := range d.Files {
			assert.NotContains(t, f.RelPath, "stale")
		}
	}
}

// TestEnumerate_Success_Symlink tests that symbolic links to schema files are
// picked up while dangling ones are skipped.
func TestEnumerate_Success_Symlink(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	input := filepath.Join(base, "protos")
	output := filepath.Join(base, "gen")

	writeTree(t, base, "shared/common.proto")
	writeTree(t, input, "a/x.proto")

	require.NoError(t, os.Symlink(filepath.Join(base, "shared", "common.proto"), filepath.Join(input, "a", "common.proto")))
	require.NoError(t, os.Symlink(filepath.Join(base, "missing.proto"), filepath.Join(input, "a", "dangling.proto")))

	dirs, err := newRealHandler().Enumerate(t.Context(), input, output, ".proto")
	require.NoError(t, err)

	byRel := dirsByRel(dirs)
	require.Len(t, byRel["a"].Files, 2)
	assert.Equal(t, filepath.Join("a", "common.proto"), byRel["a"].Files[0].RelPath)
	assert.Equal(t, filepath.Join("a", "x.proto"), byRel["a"].Files[1].RelPath)
}

// TestEnumerate_Fail_MissingRoot tests that a missing input root is an error.
func TestEnumerate_Fail_MissingRoot(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	_, err := newRealHandler().Enumerate(t.Context(), filepath.Join(base, "nope"), filepath.Join(base, "gen"), ".proto")
	require.ErrorIs(t, err, ErrInputRootUnusable)
}

// TestEnumerate_Fail_RootIsFile tests that a file as input root is an error.
func TestEnumerate_Fail_RootIsFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTree(t, base, "protos")

	_, err := newRealHandler().Enumerate(t.Context(), filepath.Join(base, "protos"), filepath.Join(base, "gen"), ".proto")
	require.ErrorIs(t, err, ErrInputRootNotDir)
}

// TestEnumerate_Fail_CtxCancel tests that a canceled context aborts the walk.
func TestEnumerate_Fail_CtxCancel(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	input := filepath.Join(base, "protos")
	writeTree(t, input, "a/x.proto")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newRealHandler().Enumerate(ctx, input, filepath.Join(base, "gen"), ".proto")
	require.ErrorIs(t, err, context.Canceled)
}
