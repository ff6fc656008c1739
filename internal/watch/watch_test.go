package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/internal/writer"
	"github.com/joshuapare/propkit/propstore"
)

func image(kv ...string) []byte {
	b := format.NewBuilder()
	for i := 0; i+1 < len(kv); i += 2 {
		b.Add(kv[i], kv[i+1])
	}
	return b.Build()
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWatcherReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "u:object_r:build_prop:s0")
	require.NoError(t, os.WriteFile(path, image("ro.build.tags", "release-keys", "ro.build.id", "A"), 0o644))

	w, err := New(path, propstore.DefaultOptions(), 20*time.Millisecond, quietLogger())
	require.NoError(t, err)
	before := w.Current().Fingerprint()
	require.NotEmpty(t, before)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan Change, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(c Change) { changes <- c }) }()

	fw := &writer.FileWriter{Path: path}
	require.NoError(t, fw.WriteImage(image("ro.build.tags", "test-keys", "ro.build.id", "A", "ro.debuggable", "1")))

	select {
	case c := <-changes:
		assert.Equal(t, before, c.Previous)
		assert.NotEqual(t, before, c.Fingerprint)
		assert.Equal(t, []string{"ro.build.tags", "ro.debuggable"}, c.Drift)
		assert.NoError(t, c.Err)
		assert.Equal(t, "test-keys", c.Store.Get("ro.build.tags"))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "props"), propstore.DefaultOptions(), 0, quietLogger())
	assert.Error(t, err)
}

func TestDrift(t *testing.T) {
	prev, err := propstore.OpenBytes(image("ro.a", "1", "ro.b", "2", "ro.c", "3"), propstore.DefaultOptions())
	require.NoError(t, err)
	next, err := propstore.OpenBytes(image("ro.a", "1", "ro.b", "x", "ro.d", "4"), propstore.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"ro.b", "ro.c", "ro.d"}, Drift(prev, next))
	assert.Empty(t, Drift(prev, prev))
}
