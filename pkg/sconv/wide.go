package sconv

import (
	"golang.org/x/text/encoding"

	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
)

// WideConverter converts between a session's locale charset and wide
// characters (Unicode code points).
//
// AppendWCS decodes mbs up to its first NUL byte; invalid sequences become
// U+FFFD and the call returns a lossy error. AppendMBS encodes wcs up to its
// first zero rune; unrepresentable runes become '?'. EncodeRune encodes a
// single rune into dst and reports false when it cannot.
type WideConverter interface {
	AppendWCS(dst *strbuf.WString, mbs []byte) error
	AppendMBS(dst *strbuf.String, wcs []rune) error
	EncodeRune(dst []byte, r rune) (int, bool)
}

// MaxCharLen is the longest byte sequence EncodeRune produces.
const MaxCharLen = 8

// NewWideConverter returns a converter for charset.
func NewWideConverter(charset string) (WideConverter, error) {
	enc, err := Resolve(charset)
	if err != nil {
		return nil, err
	}
	if isUTF8(enc) {
		return utf8Wide{}, nil
	}
	return &encodingWide{
		name: charset,
		dec:  enc.NewDecoder(),
		enc:  enc.NewEncoder(),
		repl: encodedReplacement(enc),
	}, nil
}

// utf8Wide is the converter for UTF-8 locales.
type utf8Wide struct{}

func (utf8Wide) AppendWCS(dst *strbuf.WString, mbs []byte) error {
	mbs = mbs[:strbuf.TermLen(mbs, len(mbs))]
	if err := dst.Grow(len(mbs)); err != nil {
		return err
	}
	bad := 0
	for len(mbs) > 0 {
		r, n := ucodec.DecodeStrict(mbs)
		if n == 0 {
			break
		}
		if n < 0 {
			r, n = ucodec.ReplacementChar, -n
			bad++
		}
		mbs = mbs[n:]
		if err := dst.AppendElem(r); err != nil {
			return err
		}
	}
	if bad > 0 {
		return malformed(bad, "UTF-8")
	}
	return nil
}

func (utf8Wide) AppendMBS(dst *strbuf.String, wcs []rune) error {
	wcs = wcs[:strbuf.TermLen(wcs, len(wcs))]
	if err := dst.Grow(len(wcs)); err != nil {
		return err
	}
	bad := 0
	for _, r := range wcs {
		if ucodec.IsSurrogate(r) || r < 0 || r > ucodec.MaxRune {
			if err := dst.AppendElem('?'); err != nil {
				return err
			}
			bad++
			continue
		}
		if err := strbuf.AppendRune(dst, r); err != nil {
			return err
		}
	}
	if bad > 0 {
		return unrepresentable(bad, "UTF-8")
	}
	return nil
}

func (utf8Wide) EncodeRune(dst []byte, r rune) (int, bool) {
	if ucodec.IsSurrogate(r) || r < 0 || r > ucodec.MaxRune || len(dst) < ucodec.RuneLen(r) {
		return 0, false
	}
	return ucodec.Encode(dst, r), true
}

// encodingWide converts through an x/text encoding by way of UTF-8.
type encodingWide struct {
	name string
	dec  *encoding.Decoder
	enc  *encoding.Encoder
	repl []byte // charset's encoding of U+FFFD
	tmp  strbuf.String
}

func (w *encodingWide) AppendWCS(dst *strbuf.WString, mbs []byte) error {
	mbs = mbs[:strbuf.TermLen(mbs, len(mbs))]
	w.tmp.Empty()
	bad, err := appendDecoded(&w.tmp, w.dec, mbs, w.repl)
	if err != nil {
		return err
	}
	if err := dst.Grow(w.tmp.Len()); err != nil {
		return err
	}
	s := w.tmp.Elems()
	for len(s) > 0 {
		r, n := ucodec.Decode(s)
		if n == 0 {
			break
		}
		if n < 0 {
			n = -n
		}
		s = s[n:]
		if err := dst.AppendElem(r); err != nil {
			return err
		}
	}
	if bad > 0 {
		return malformed(bad, w.name)
	}
	return nil
}

func (w *encodingWide) AppendMBS(dst *strbuf.String, wcs []rune) error {
	wcs = wcs[:strbuf.TermLen(wcs, len(wcs))]
	w.tmp.Empty()
	for _, r := range wcs {
		if err := strbuf.AppendRune(&w.tmp, r); err != nil {
			return err
		}
	}
	bad, err := appendTransformed(dst, w.enc, w.tmp.Elems(), []byte{'?'}, true)
	if err != nil {
		return err
	}
	if bad > 0 {
		return unrepresentable(bad, w.name)
	}
	return nil
}

func (w *encodingWide) EncodeRune(dst []byte, r rune) (int, bool) {
	var u [4]byte
	n := ucodec.Encode(u[:], r)
	w.enc.Reset()
	nDst, nSrc, err := w.enc.Transform(dst, u[:n], true)
	if err != nil || nSrc != n {
		return 0, false
	}
	return nDst, true
}

// asciiFallback is the converter used when the session charset cannot be
// resolved.
func asciiFallback(name string) WideConverter {
	return &encodingWide{name: name, dec: ASCII.NewDecoder(), enc: ASCII.NewEncoder()}
}
