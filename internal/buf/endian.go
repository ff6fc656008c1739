// Package buf contains bounds-checked primitives for decoding untrusted byte
// buffers. Every reader here returns a zero value instead of panicking when
// the requested range does not fit.
package buf

import "encoding/binary"

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U32At reads a little-endian uint32 at off. ok is false when off+4 exceeds len(b).
func U32At(b []byte, off int) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(s), true
}

// PutU32 writes v little-endian at off. It is a no-op when the range does not fit.
func PutU32(b []byte, off int, v uint32) {
	if s, ok := Slice(b, off, 4); ok {
		binary.LittleEndian.PutUint32(s, v)
	}
}
