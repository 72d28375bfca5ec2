package sconv

import (
	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
)

// appendLegacy repairs UTF-8 written from 16-bit wide characters: each
// decoded code point is cut to 16 bits and encoded one at a time in the
// session charset.
func (c *Conv) appendLegacy(dst *strbuf.String, src []byte) error {
	if err := dst.Grow(len(src)); err != nil {
		return err
	}
	var (
		tmp       [MaxCharLen]byte
		bad, lost int
	)
	for len(src) > 0 {
		r, n := ucodec.Decode(src)
		if n == 0 {
			break
		}
		if n < 0 {
			n = -n
			r = '?'
			bad++
		}
		src = src[n:]

		m, ok := c.wide.EncodeRune(tmp[:], rune(uint16(r)))
		if !ok {
			lost++
			if err := dst.AppendElem('?'); err != nil {
				return err
			}
			continue
		}
		if err := dst.Append(tmp[:m]); err != nil {
			return err
		}
	}
	switch {
	case bad > 0:
		return malformed(bad, "UTF-8")
	case lost > 0:
		return unrepresentable(lost, c.to)
	}
	return nil
}
