// Package strbuf implements the growable string buffers that every
// conversion writes through.
//
// A Buffer grows exponentially (32 elements minimum, doubling below 8192,
// then by a quarter) so a long run of appends costs amortized O(1) per
// element, and it never shrinks: Empty only resets the length, so a buffer
// that is reused for strings of similar size stops allocating. One element
// past the length is always reserved and kept zero, which lets callers hand
// the contents to code expecting a terminated string.
//
// Growth never wraps and never aborts. When the size computation would
// overflow, or the buffer would exceed its byte ceiling, the buffer is freed
// and the call returns types.ErrOutOfMemory.
//
// String (bytes) and WString (runes) are the two instantiations used by the
// rest of the module.
package strbuf
