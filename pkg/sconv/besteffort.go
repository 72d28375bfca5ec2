package sconv

import (
	"unicode/utf8"

	"github.com/joshuapare/archstr/pkg/strbuf"
)

// appendBestEffort is used when no real conversion exists. Between identical
// encodings the bytes are copied and then checked against the session
// charset without touching the output. Otherwise ASCII is kept and every
// other byte becomes '?', or U+FFFD when the destination is UTF-8.
func (c *Conv) appendBestEffort(dst *strbuf.String, src []byte) error {
	if c.same {
		if err := dst.Append(src); err != nil {
			return err
		}
		return c.validate(src)
	}

	if err := dst.Grow(len(src)); err != nil {
		return err
	}
	bad := 0
	for len(src) > 0 {
		i := 0
		for i < len(src) && src[i] < utf8.RuneSelf {
			i++
		}
		if err := dst.Append(src[:i]); err != nil {
			return err
		}
		if i == len(src) {
			break
		}
		if err := strbuf.AppendReplacement(dst, c.flags&ToUTF8 != 0); err != nil {
			return err
		}
		bad++
		src = src[i+1:]
	}
	if bad > 0 {
		return unrepresentable(bad, c.to)
	}
	return nil
}

// validate reports whether src decodes cleanly in the session charset.
func (c *Conv) validate(src []byte) error {
	c.wscratch.Empty()
	return c.wide.AppendWCS(&c.wscratch, src)
}
