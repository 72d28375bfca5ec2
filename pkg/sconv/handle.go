package sconv

import (
	"unicode/utf8"

	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/internal/unorm"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

// sourceReplacer is implemented by handles whose source charset can encode
// U+FFFD, so a decoded U+FFFD is not always a malformed sequence.
type sourceReplacer interface {
	SourceReplacement() []byte
}

// appendHandle streams src through the backend handle. UTF-8 sources are
// composed to NFC first since decomposed input rarely has a single-character
// mapping in other charsets.
func (c *Conv) appendHandle(dst *strbuf.String, src []byte) error {
	if c.handle == nil {
		return unsupported(c.from, c.to)
	}

	var lossy error
	if c.flags&NormalizeC != 0 {
		c.scratch.Empty()
		if err := unorm.AppendNFC(&c.scratch, src); err != nil {
			if !types.IsLossy(err) {
				return err
			}
			lossy = err
		}
		src = c.scratch.Elems()
	}

	dec, enc := c.handle.Decoder(), c.handle.Encoder()
	if dec != nil {
		out := dst
		if enc != nil {
			c.mid.Empty()
			out = &c.mid
		}
		var legit []byte
		if sr, ok := c.handle.(sourceReplacer); ok {
			legit = sr.SourceReplacement()
		}
		bad, err := appendDecoded(out, dec, src, legit)
		if err != nil {
			return err
		}
		if bad > 0 {
			lossy = types.Worse(lossy, malformed(bad, c.from))
		}
		if enc == nil {
			return lossy
		}
		src = c.mid.Elems()
	}

	if enc == nil {
		return types.Worse(lossy, appendRepairedUTF8(dst, src))
	}

	repl := []byte{'?'}
	if c.flags&ToUTF8 != 0 {
		repl = ucodec.ReplacementUTF8
	}
	subs, err := appendTransformed(dst, enc, src, repl, true)
	if err != nil {
		return err
	}
	if subs > 0 {
		if dec == nil && c.flags&NormalizeC == 0 && !utf8.Valid(src) {
			lossy = types.Worse(lossy, malformed(subs, "UTF-8"))
		} else {
			lossy = types.Worse(lossy, unrepresentable(subs, c.to))
		}
	}
	return lossy
}
