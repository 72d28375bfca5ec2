package sconv

import (
	"github.com/joshuapare/archstr/internal/buf"
	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

// appendFromUTF16BE decodes UTF-16BE, pairing surrogates. Unpaired
// surrogates become U+FFFD and a NUL unit ends the input. The code points are written as UTF-8 when the
// session charset is UTF-8, and through the wide converter otherwise.
func (c *Conv) appendFromUTF16BE(dst *strbuf.String, src []byte) error {
	bad := 0
	c.wscratch.Empty()
	if err := c.wscratch.Grow(len(src) / 2); err != nil {
		return err
	}
	for len(src) >= 2 {
		u := rune(buf.U16BE(src))
		if u == 0 {
			break
		}
		src = src[2:]
		if ucodec.IsHighSurrogate(u) && len(src) >= 2 {
			if lo := rune(buf.U16BE(src)); ucodec.IsLowSurrogate(lo) {
				u = ucodec.CombineSurrogates(u, lo)
				src = src[2:]
			}
		}
		if ucodec.IsSurrogate(u) {
			u = ucodec.ReplacementChar
			bad++
		}
		if err := c.wscratch.AppendElem(u); err != nil {
			return err
		}
	}

	var err error
	if c.flags&ToUTF8 != 0 {
		err = dst.Grow(c.wscratch.Len())
		for _, r := range c.wscratch.Elems() {
			if err != nil {
				break
			}
			err = strbuf.AppendRune(dst, r)
		}
	} else {
		err = c.wide.AppendMBS(dst, c.wscratch.Elems())
	}
	if err != nil && !types.IsLossy(err) {
		return err
	}
	if bad > 0 {
		return types.Worse(malformed(bad, "UTF-16BE"), err)
	}
	return err
}

// appendToUTF16BE encodes the session charset as UTF-16BE, splitting
// supplementary code points into surrogate pairs.
func (c *Conv) appendToUTF16BE(dst *strbuf.String, src []byte) error {
	var lossy error
	c.wscratch.Empty()
	if c.fromCP == codepage.UTF8 || c.from == "UTF-8" {
		bad := 0
		for len(src) > 0 {
			r, n := ucodec.DecodeCESU8(src)
			if n == 0 {
				break
			}
			if n < 0 {
				n = -n
				bad++
			}
			src = src[n:]
			if err := c.wscratch.AppendElem(r); err != nil {
				return err
			}
		}
		if bad > 0 {
			lossy = malformed(bad, "UTF-8")
		}
	} else if err := c.wide.AppendWCS(&c.wscratch, src); err != nil {
		if !types.IsLossy(err) {
			return err
		}
		lossy = err
	}

	if err := dst.Grow(2 * c.wscratch.Len()); err != nil {
		return err
	}
	for _, r := range c.wscratch.Elems() {
		if r > 0xFFFF {
			hi, lo := ucodec.SplitSurrogates(r)
			if err := appendUnit(dst, uint16(hi)); err != nil {
				return err
			}
			r = lo
		}
		if err := appendUnit(dst, uint16(r)); err != nil {
			return err
		}
	}
	return lossy
}

func appendUnit(dst *strbuf.String, u uint16) error {
	if err := dst.Grow(2); err != nil {
		return err
	}
	buf.PutU16BE(dst.Spare(), u)
	dst.Commit(2)
	return nil
}
