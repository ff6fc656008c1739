package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/propkit/internal/buf"
)

// Header is the 24-byte record that follows the "PROP" signature. It is a
// copy, never a view: nothing in the parser writes back into it, and
// TOCOffset always keeps its on-disk meaning (relative to the data region).
type Header struct {
	Magic     uint32
	Version   uint32
	NumSlots  uint32
	Reserved  uint32
	TOCOffset uint32
	DataSize  uint32
}

// FindSignature returns the offset of the first Signature run in b, or -1.
func FindSignature(b []byte) int {
	return bytes.Index(b, Signature)
}

// ParseHeader decodes a header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("prop header: %w", ErrTruncated)
	}
	h := Header{
		Magic:     buf.U32LE(b[MagicOffset:]),
		Version:   buf.U32LE(b[VersionOffset:]),
		NumSlots:  buf.U32LE(b[NumSlotsOffset:]),
		Reserved:  buf.U32LE(b[ReservedOffset:]),
		TOCOffset: buf.U32LE(b[TOCOffsetOffset:]),
		DataSize:  buf.U32LE(b[DataSizeOffset:]),
	}
	if h.Magic != Magic {
		return Header{}, fmt.Errorf("prop header: magic 0x%08X: %w", h.Magic, ErrSignatureMismatch)
	}
	return h, nil
}

// Locate finds the first signature in b and decodes the header there. It
// returns the header and its absolute offset. Only the first occurrence is
// considered: a later "PROP" run is never tried.
func Locate(b []byte) (Header, int, error) {
	off := FindSignature(b)
	if off < 0 {
		return Header{}, -1, ErrSignatureNotFound
	}
	region, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Header{}, off, fmt.Errorf("prop header at 0x%X: %w", off, ErrTruncated)
	}
	h, err := ParseHeader(region)
	if err != nil {
		return Header{}, off, err
	}
	return h, off, nil
}

// Validate reports whether the header can be trusted for structured parsing.
func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("magic 0x%08X: %w", h.Magic, ErrSignatureMismatch)
	}
	if h.NumSlots == 0 || h.NumSlots > MaxPlausibleSlots {
		return fmt.Errorf("num_slots=%d outside (0, %d]: %w", h.NumSlots, MaxPlausibleSlots, ErrImplausible)
	}
	return nil
}

// Plausible is Validate without the error detail.
func (h Header) Plausible() bool { return h.Validate() == nil }

// DataStart returns the absolute offset of the data region for a header
// located at headerOff.
func DataStart(headerOff int) int { return headerOff + HeaderSize }
