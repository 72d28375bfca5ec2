package strbuf

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/archstr/internal/buf"
	"github.com/joshuapare/archstr/pkg/types"
)

// Growth policy constants.
const (
	minCapacity    = 32
	doublingCutoff = 8192
)

// Elem is the element type of a buffer: bytes for narrow strings, runes for
// wide ones.
type Elem interface {
	~byte | ~rune
}

// Buffer is a growable, zero-terminated array of T.
//
// The zero value is an empty buffer ready for use.
type Buffer[T Elem] struct {
	s        []T // len(s) is the capacity; s[length] is the terminator
	length   int
	limit    int // byte ceiling; 0 means types.DefaultBufferLimit
	reallocs int
}

// String is a narrow (byte) string buffer.
type String = Buffer[byte]

// WString is a wide (rune) string buffer.
type WString = Buffer[rune]

// Len returns the number of valid elements.
func (b *Buffer[T]) Len() int { return b.length }

// Cap returns the number of allocated elements, terminator slot included.
func (b *Buffer[T]) Cap() int { return len(b.s) }

// Reallocs returns how many times the backing array has been replaced.
func (b *Buffer[T]) Reallocs() int { return b.reallocs }

// SetLimit sets the byte ceiling for future growth. Zero restores the default.
func (b *Buffer[T]) SetLimit(bytes int) { b.limit = bytes }

// Limit returns the effective byte ceiling.
func (b *Buffer[T]) Limit() int {
	if b.limit <= 0 {
		return types.DefaultBufferLimit
	}
	return b.limit
}

// Elems returns the valid elements. The slice aliases the buffer and is only
// valid until the next mutating call.
func (b *Buffer[T]) Elems() []T {
	if b.s == nil {
		return nil
	}
	return b.s[:b.length]
}

// String returns a copy of the contents as a Go string.
func (b *Buffer[T]) String() string {
	switch v := any(b.Elems()).(type) {
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	default:
		return ""
	}
}

func elemSize[T Elem]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Ensure makes room for at least n elements (terminator included). It never
// shrinks the buffer. On overflow or when the byte ceiling would be exceeded
// the buffer is freed and types.ErrOutOfMemory is returned.
func (b *Buffer[T]) Ensure(n int) error {
	if b.s != nil && n <= len(b.s) {
		return nil
	}
	if n < 0 {
		b.Free()
		return types.Errorf(types.ErrKindOutOfMemory, "strbuf: negative size request", nil)
	}

	cur := len(b.s)
	var next int
	switch {
	case cur < minCapacity:
		next = minCapacity
	case cur < doublingCutoff:
		next = cur + cur
	default:
		var ok bool
		next, ok = buf.AddOverflowSafe(cur, cur/4)
		if !ok {
			b.Free()
			return types.Errorf(types.ErrKindOutOfMemory, "strbuf: capacity overflow", nil)
		}
	}
	if next < n {
		next = n
	}

	size, ok := buf.MulOverflowSafe(next, elemSize[T]())
	if !ok || size > b.Limit() {
		b.Free()
		return types.Errorf(types.ErrKindOutOfMemory,
			fmt.Sprintf("strbuf: %d elements exceeds %d byte limit", next, b.Limit()), nil)
	}

	s := make([]T, next)
	copy(s, b.s[:b.length])
	b.s = s
	b.reallocs++
	return nil
}

// Grow makes room for extra more elements after the current length.
func (b *Buffer[T]) Grow(extra int) error {
	n, ok := buf.AddOverflowSafe(b.length, extra)
	if ok {
		n, ok = buf.AddOverflowSafe(n, 1)
	}
	if !ok {
		b.Free()
		return types.Errorf(types.ErrKindOutOfMemory, "strbuf: length overflow", nil)
	}
	return b.Ensure(n)
}

// Append copies p to the end of the buffer.
func (b *Buffer[T]) Append(p []T) error {
	if err := b.Grow(len(p)); err != nil {
		return err
	}
	copy(b.s[b.length:], p)
	b.length += len(p)
	b.s[b.length] = 0
	return nil
}

// AppendElem appends a single element.
func (b *Buffer[T]) AppendElem(c T) error {
	if err := b.Grow(1); err != nil {
		return err
	}
	b.s[b.length] = c
	b.length++
	b.s[b.length] = 0
	return nil
}

// NCat appends p up to its first zero element, looking at no more than n
// elements of p.
func (b *Buffer[T]) NCat(p []T, n int) error {
	return b.Append(p[:TermLen(p, n)])
}

// Cat appends p up to its first zero element.
func (b *Buffer[T]) Cat(p []T) error {
	return b.NCat(p, types.MaxStrcatLen)
}

// Concat appends all valid elements of src.
func (b *Buffer[T]) Concat(src *Buffer[T]) error {
	return b.Append(src.Elems())
}

// Copy replaces the contents with p.
func (b *Buffer[T]) Copy(p []T) error {
	b.Empty()
	return b.Append(p)
}

// NCopy replaces the contents with p, bounded like NCat.
func (b *Buffer[T]) NCopy(p []T, n int) error {
	b.Empty()
	return b.NCat(p, n)
}

// Empty sets the length to zero and keeps the capacity.
func (b *Buffer[T]) Empty() {
	b.length = 0
	if len(b.s) > 0 {
		b.s[0] = 0
	}
}

// Free releases the backing array.
func (b *Buffer[T]) Free() {
	b.s = nil
	b.length = 0
}

// Truncate shortens the buffer to n elements. Larger n is a no-op.
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 || n >= b.length {
		return
	}
	b.length = n
	b.s[n] = 0
}

// Spare returns the writable region between the length and the terminator
// slot. Producers fill a prefix of it and then call Commit.
func (b *Buffer[T]) Spare() []T {
	if len(b.s) == 0 {
		return nil
	}
	return b.s[b.length : len(b.s)-1]
}

// Commit marks n elements of the Spare region as valid.
func (b *Buffer[T]) Commit(n int) {
	if n <= 0 {
		return
	}
	if limit := len(b.s) - 1 - b.length; n > limit {
		n = limit
	}
	b.length += n
	b.s[b.length] = 0
}

// TermLen returns the index of the first zero element of p, examining at
// most n elements.
func TermLen[T Elem](p []T, n int) int {
	if n > len(p) {
		n = len(p)
	}
	for i := 0; i < n; i++ {
		if p[i] == 0 {
			return i
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
