package sconv

import (
	"golang.org/x/text/transform"
)

// Handle is an open conversion between two charsets, split at UTF-8.
//
// Decoder converts source bytes to UTF-8 and Encoder converts UTF-8 to the
// destination charset. Either is nil when its side is UTF-8. Encoders report
// characters they cannot represent as an error positioned at the offending
// rune, as x/text encoders do.
type Handle interface {
	Decoder() transform.Transformer
	Encoder() transform.Transformer
	Close() error
}

// Backend opens conversion handles. An error means the backend cannot
// convert between the two charsets at all.
type Backend interface {
	Open(from, to string) (Handle, error)
}

// NoBackend never opens a handle. Sessions using it only have the built-in
// strategies.
type NoBackend struct{}

// Open always fails with types.ErrEncodingUnsupported.
func (NoBackend) Open(from, to string) (Handle, error) {
	return nil, unsupported(from, to)
}
