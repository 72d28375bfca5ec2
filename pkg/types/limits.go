package types

// ============================================================================
// Buffer and conversion limits
// ============================================================================

const (
	// DefaultBufferLimit caps a single string buffer, in bytes. Growth beyond
	// it fails with ErrOutOfMemory instead of asking the runtime for more.
	DefaultBufferLimit = 1 << 30

	// MaxStrcatLen bounds the unbounded strcat-style appends (16 MiB elements).
	MaxStrcatLen = 0x1000000

	// MaxFollowingCombiners is the longest run of combining marks NFC
	// composition will compose into one starter. Longer runs are put in
	// canonical order and written without composing.
	MaxFollowingCombiners = 10
)
