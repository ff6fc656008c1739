package propstore

import (
	"fmt"

	"github.com/joshuapare/propkit/internal/mmfile"
)

// Load reads the whole property file into an owned buffer. It fails with an
// ErrKindIO error when the file is missing, unreadable, empty, or changes
// size while being read; it never returns a partial buffer.
func Load(path string) ([]byte, error) {
	raw, err := mmfile.Snapshot(path)
	if err != nil {
		return nil, &Error{Kind: ErrKindIO, Msg: "read property file " + path, Err: err}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return raw, nil
}
