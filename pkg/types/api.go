package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindOutOfMemory         ErrKind = iota // buffer growth overflowed or hit its ceiling
	ErrKindEncodingUnsupported                // no conversion path for a strict request
	ErrKindMalformedInput                     // source bytes are invalid in the declared encoding
	ErrKindUnrepresentable                    // valid code point with no target encoding
)

// String returns a short lowercase name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindOutOfMemory:
		return "out-of-memory"
	case ErrKindEncodingUnsupported:
		return "encoding-unsupported"
	case ErrKindMalformedInput:
		return "malformed-input"
	case ErrKindUnrepresentable:
		return "unrepresentable"
	default:
		return "unknown"
	}
}

// Lossy reports whether errors of this kind still come with usable output.
func (k ErrKind) Lossy() bool {
	return k == ErrKindMalformedInput || k == ErrKindUnrepresentable
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
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

// Is matches any *Error of the same kind, so callers can compare against the
// sentinels below even when the message differs.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrOutOfMemory indicates a buffer could not grow to the requested size.
	ErrOutOfMemory = &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory"}
	// ErrEncodingUnsupported indicates no conversion exists and best effort was not allowed.
	ErrEncodingUnsupported = &Error{Kind: ErrKindEncodingUnsupported, Msg: "character-set conversion not supported"}
	// ErrMalformedInput indicates invalid source sequences were replaced.
	ErrMalformedInput = &Error{Kind: ErrKindMalformedInput, Msg: "malformed input replaced"}
	// ErrUnrepresentable indicates characters the destination cannot hold were replaced.
	ErrUnrepresentable = &Error{Kind: ErrKindUnrepresentable, Msg: "unrepresentable character replaced"}
)

// Errorf builds a typed error of the given kind wrapping cause.
func Errorf(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf extracts the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// IsLossy reports whether err is a soft failure: the conversion completed
// with replacements and its output is still meaningful.
func IsLossy(err error) bool {
	k, ok := KindOf(err)
	return ok && k.Lossy()
}

// Worse returns whichever of a and b should be reported to the caller.
// Hard failures win over lossy ones; the first error wins among equals.
func Worse(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case IsLossy(a) && !IsLossy(b):
		return b
	default:
		return a
	}
}
