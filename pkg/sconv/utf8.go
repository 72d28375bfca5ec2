package sconv

import (
	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/internal/unorm"
	"github.com/joshuapare/archstr/pkg/strbuf"
)

func (c *Conv) appendUTF8(dst *strbuf.String, src []byte) error {
	switch {
	case c.flags&NormalizeD != 0:
		return c.decomposer.AppendNFD(dst, src)
	case c.flags&NormalizeC != 0:
		return unorm.AppendNFC(dst, src)
	}
	return appendRepairedUTF8(dst, src)
}

// appendRepairedUTF8 copies UTF-8, merging CESU-8 surrogate pairs into
// 4-byte sequences and replacing invalid sequences with U+FFFD. Valid runs
// are copied in one piece.
func appendRepairedUTF8(dst *strbuf.String, src []byte) error {
	if err := dst.Grow(len(src)); err != nil {
		return err
	}
	bad := 0
	s := src
	run := 0 // length of the valid prefix of s not yet written
	for run < len(s) {
		r, n := ucodec.DecodeCESU8(s[run:])
		if n == 0 {
			break
		}
		if n > 0 && n != 6 {
			run += n
			continue
		}
		if err := dst.Append(s[:run]); err != nil {
			return err
		}
		if n < 0 {
			n = -n
			bad++
		}
		if err := strbuf.AppendRune(dst, r); err != nil {
			return err
		}
		s = s[run+n:]
		run = 0
	}
	if err := dst.Append(s[:run]); err != nil {
		return err
	}
	if bad > 0 {
		return malformed(bad, "UTF-8")
	}
	return nil
}
