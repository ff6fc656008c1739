// Package writer exposes sinks for property area images.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes images to a filesystem path atomically, so a watcher on
// the directory never parses a partial image.
type FileWriter struct {
	Path string
	// Mode of the final file. Default: 0644
	Mode os.FileMode
}

// WriteImage writes buf to the configured path via temp file + rename.
func (w *FileWriter) WriteImage(buf []byte) error {
	// Temp file in the same directory so the rename stays on one filesystem
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".propkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	mode := w.Mode
	if mode == 0 {
		mode = 0o644
	}
	if chmodErr := tmpFile.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
