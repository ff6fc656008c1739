package buf

// CString returns the bytes from off up to (not including) the first NUL, or
// up to the end of b when no terminator follows. An off outside b yields nil.
// The result aliases b.
func CString(b []byte, off int) []byte {
	if off < 0 || off >= len(b) {
		return nil
	}
	end := off
	for end < len(b) && b[end] != 0 {
		end++
	}
	return b[off:end]
}

// IsPrintable reports whether c is printable 7-bit ASCII (0x20..0x7E).
func IsPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7E
}

// PrintableRun returns the printable ASCII run starting at off, reading at
// most limit bytes and stopping at the first NUL or non-printable byte.
func PrintableRun(b []byte, off, limit int) []byte {
	if off < 0 || off >= len(b) || limit <= 0 {
		return nil
	}
	end := off
	for end < len(b) && end-off < limit && IsPrintable(b[end]) {
		end++
	}
	return b[off:end]
}
