package sconv

import (
	"log/slog"

	"github.com/joshuapare/archstr/pkg/strbuf"
)

// Decomposer produces canonical decompositions (Form D) of UTF-8 text.
// unorm.HFSDecomposer is the default.
type Decomposer interface {
	AppendNFD(dst *strbuf.String, src []byte) error
}

// Options configures a Session. The zero value is ready to use.
type Options struct {
	// Charset is the session's locale charset, the implicit side of every
	// conversion. Empty means the charset detected from the environment.
	Charset string

	// OEMCharset is the OEM code page charset (e.g. "CP850") used by the
	// default read/write conversions. Empty means detected when Charset is
	// also empty, and equal to Charset otherwise.
	OEMCharset string

	// Backend opens host conversion handles. Default: XTextBackend.
	Backend Backend

	// Decomposer is used when NormalizeD is set. Default: unorm.HFSDecomposer.
	Decomposer Decomposer

	// Wide converts between Charset and wide characters. Default: built for
	// Charset by NewWideConverter.
	Wide WideConverter

	// Reporter receives conversion setup failures. Default: a SlogReporter
	// on Logger.
	Reporter Reporter

	// Logger receives debug and warning events. Default: discard.
	Logger *slog.Logger

	// PreferHostHandle tries the Backend before the built-in UTF-16BE loop.
	PreferHostHandle bool

	// LegacyWideChars enables the repair path for "UTF-8-MADE_BY_LIBARCHIVE2".
	// Without it that name is treated as plain UTF-8.
	LegacyWideChars bool

	// NormalizeD decomposes UTF-8 read from archives instead of composing it.
	NormalizeD bool

	// BufferLimit caps the scratch buffers of each conversion, in bytes.
	// Zero means types.DefaultBufferLimit.
	BufferLimit int
}
