//go:build !unix

package mmfile

import "os"

// Map reads the whole file where mmap is unavailable. The contract matches
// the unix version: nil cleanup on error, empty slice for an empty file.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, func() error { return nil }, nil
}
