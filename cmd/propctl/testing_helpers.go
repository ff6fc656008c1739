package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/propkit/internal/format"
)

// deviceProps is a complete, untampered set of critical properties.
var deviceProps = [][2]string{
	{"ro.build.fingerprint", "google/panther/panther:14/UQ1A.240205.004/11269751:user/release-keys"},
	{"ro.build.tags", "release-keys"},
	{"ro.build.type", "user"},
	{"ro.product.model", "Pixel 7"},
	{"ro.product.brand", "google"},
	{"ro.build.display.id", "UQ1A.240205.004"},
	{"ro.build.id", "UQ1A.240205.004"},
	{"ro.build.version.incremental", "11269751"},
	{"ro.build.version.release", "14"},
	{"ro.build.version.sdk", "34"},
	{"persist.sys.locale", "en-US"},
}

// writeImage writes a property area holding props to a temp file and
// returns its path.
func writeImage(t *testing.T, props [][2]string) string {
	t.Helper()
	b := format.NewBuilder()
	for _, kv := range props {
		b.Add(kv[0], kv[1])
	}
	path := filepath.Join(t.TempDir(), "build_prop")
	if err := os.WriteFile(path, b.Build(), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

// without returns props minus the named key.
func without(props [][2]string, key string) [][2]string {
	var out [][2]string
	for _, kv := range props {
		if kv[0] != key {
			out = append(out, kv)
		}
	}
	return out
}

// resetFlags restores the global flags, points --file at path and reloads
// configuration.
func resetFlags(t *testing.T, path string) {
	t.Helper()
	quiet = false
	verbose = false
	jsonOut = false
	cfgFile = ""
	propFile = path
	propType = ""
	if err := setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	cfg.Log.Level = "error"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot block the writer.
	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := buf.ReadFrom(r)
		done <- err
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	if err := <-done; err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
