// Package mmfile loads files through a read-only memory mapping. Property
// areas live on tmpfs and are designed to be mapped, which also avoids a
// second pass when the file is large.
package mmfile

import (
	"fmt"
	"os"
)

// Snapshot maps path, copies the mapping into a freshly allocated slice and
// unmaps it before returning, so no handle or mapping outlives the call. The
// copy is checked against the size reported by stat: a file that changed
// size in between is reported as an error rather than returned partially.
func Snapshot(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, cleanup, err := Map(path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	if cerr := cleanup(); cerr != nil {
		return nil, fmt.Errorf("mmfile: unmap %s: %w", path, cerr)
	}
	if int64(len(out)) != info.Size() {
		return nil, fmt.Errorf("mmfile: short read of %s: got %d bytes, stat reported %d", path, len(out), info.Size())
	}
	return out, nil
}
