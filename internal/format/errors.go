package format

import "errors"

var (
	// ErrSignatureNotFound indicates no "PROP" run exists in the buffer.
	ErrSignatureNotFound = errors.New("format: signature not found")
	// ErrSignatureMismatch indicates a header candidate had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrImplausible indicates a header whose fields cannot describe a real table.
	ErrImplausible = errors.New("format: implausible header")
)
