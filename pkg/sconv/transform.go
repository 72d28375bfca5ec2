package sconv

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
)

// appendTransformed runs t over all of src, appending to dst and growing it
// whenever t reports a short destination. Any other transformer error is
// answered by writing repl and skipping one rune of src (one byte when
// skipRune is false); the number of substitutions is returned.
func appendTransformed(dst *strbuf.String, t transform.Transformer, src, repl []byte, skipRune bool) (int, error) {
	t.Reset()
	if err := dst.Grow(len(src)); err != nil {
		return 0, err
	}
	subs := 0
	for {
		nDst, nSrc, err := t.Transform(dst.Spare(), src, true)
		dst.Commit(nDst)
		src = src[nSrc:]

		switch {
		case err == nil:
			return subs, nil
		case errors.Is(err, transform.ErrShortDst):
			if gerr := dst.Ensure(dst.Cap() + 1); gerr != nil {
				return subs, gerr
			}
		default:
			if len(src) == 0 {
				return subs, nil
			}
			if aerr := dst.Append(repl); aerr != nil {
				return subs, aerr
			}
			n := 1
			if skipRune {
				if _, size := utf8.DecodeRune(src); size > 1 {
					n = size
				}
			}
			src = src[n:]
			subs++
		}
	}
}

// appendDecoded runs a decoder and returns how many malformed sequences it
// replaced. x/text decoders never fail on bad input; they emit U+FFFD. legit
// is the source charset's own encoding of U+FFFD, or nil; those occurrences
// in src decode to U+FFFD too and are not counted.
func appendDecoded(dst *strbuf.String, dec transform.Transformer, src, legit []byte) (int, error) {
	start := dst.Len()
	if _, err := appendTransformed(dst, dec, src, ucodec.ReplacementUTF8, false); err != nil {
		return 0, err
	}
	bad := bytes.Count(dst.Elems()[start:], ucodec.ReplacementUTF8) - countEncoded(src, legit)
	return max(bad, 0), nil
}

// countEncoded counts the occurrences of seq in src. A 2-byte seq is a
// UTF-16 code unit and only matches at even offsets.
func countEncoded(src, seq []byte) int {
	if len(seq) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(seq) <= len(src); {
		j := bytes.Index(src[i:], seq)
		if j < 0 {
			break
		}
		i += j
		if len(seq) == 2 && i%2 != 0 {
			i++
			continue
		}
		n++
		i += len(seq)
	}
	return n
}

// encodedReplacement returns how enc writes U+FFFD, or nil when it cannot.
// A byte order mark written ahead of it is dropped.
func encodedReplacement(enc encoding.Encoding) []byte {
	b, err := enc.NewEncoder().Bytes(ucodec.ReplacementUTF8)
	if err != nil || len(b) == 0 {
		return nil
	}
	if len(b) == 4 && (bytes.HasPrefix(b, []byte{0xFE, 0xFF}) || bytes.HasPrefix(b, []byte{0xFF, 0xFE})) {
		b = b[2:]
	}
	// some encoders substitute rather than fail; only keep a faithful encoding
	if d, err := enc.NewDecoder().Bytes(b); err != nil || !bytes.Equal(d, ucodec.ReplacementUTF8) {
		return nil
	}
	return b
}
