package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build_prop")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteImage([]byte("new image")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new image", string(got))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriterMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img")
	w := &FileWriter{Path: path, Mode: 0o600}
	require.NoError(t, w.WriteImage([]byte{1, 2, 3}))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestFileWriterMissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "img")}
	assert.Error(t, w.WriteImage([]byte("x")))
}
