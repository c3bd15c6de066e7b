package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.hcl"))
	touch(t, filepath.Join(root, "a.hcl"))
	touch(t, filepath.Join(root, "nested", "c.hcl"))
	touch(t, filepath.Join(root, "notes.txt"))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "model")
	touch(t, filepath.Join(dir, "priors.hcl"))
	touch(t, filepath.Join(dir, "likelihood.hcl"))
	extra := filepath.Join(root, "extra.model")
	touch(t, extra)

	files, err := Collect([]string{dir, extra, filepath.Join(dir, "priors.hcl")}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		extra,
		filepath.Join(dir, "likelihood.hcl"),
		filepath.Join(dir, "priors.hcl"),
	}, files)

	_, err = Collect([]string{filepath.Join(root, "missing.hcl")}, ".hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	_, err = Collect([]string{empty}, ".hcl")
	assert.ErrorIs(t, err, ErrNoFiles)
}
