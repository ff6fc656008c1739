package propstore

import "errors"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindIO     ErrKind = iota // file missing, unreadable or empty
	ErrKindFormat                // no signature, implausible header, or every strategy came up empty
	ErrKindBounds                // an offset or extent fell outside the buffer (diagnostics only)
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindIO:
		return "io"
	case ErrKindFormat:
		return "format"
	case ErrKindBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (possibly wrapped) by Parse and Open.
var (
	// ErrEmptyFile indicates the property file exists but holds no bytes.
	ErrEmptyFile = &Error{Kind: ErrKindIO, Msg: "property file is empty"}
	// ErrNoProperties indicates that no strategy recovered an "ro." entry.
	ErrNoProperties = &Error{Kind: ErrKindFormat, Msg: "no ro.* properties recovered"}
	// ErrNotParsed is returned by Parser.Err before Parse has run.
	ErrNotParsed = &Error{Kind: ErrKindFormat, Msg: "parse has not run"}
)

// KindOf extracts the ErrKind carried by err.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
