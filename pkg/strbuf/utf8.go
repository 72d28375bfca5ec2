package strbuf

import "github.com/joshuapare/archstr/internal/ucodec"

// AppendRune appends the UTF-8 form of r to b.
func AppendRune(b *String, r rune) error {
	if err := b.Grow(4); err != nil {
		return err
	}
	b.Commit(ucodec.Encode(b.Spare(), r))
	return nil
}

// AppendReplacement appends U+FFFD when utf8 is set and '?' otherwise.
func AppendReplacement(b *String, utf8 bool) error {
	if utf8 {
		return b.Append(ucodec.ReplacementUTF8)
	}
	return b.AppendElem('?')
}
