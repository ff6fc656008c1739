package propstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props")
	want := []byte("PROP\x01\x02\x03")
	require.NoError(t, os.WriteFile(path, want, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The result is owned by the caller.
	got[0] = 'X'
	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, byte('P'), again[0])
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.True(t, IsKind(err, ErrKindIO))
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	got, err := Load(path)
	require.Nil(t, got)
	require.ErrorIs(t, err, ErrEmptyFile)
}
