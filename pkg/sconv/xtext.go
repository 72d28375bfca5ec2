package sconv

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/pkg/types"
)

// byCodepage maps Windows code page numbers to x/text encodings.
var byCodepage = map[uint32]encoding.Encoding{
	37:    charmap.CodePage037,
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1047:  charmap.CodePage1047,
	1140:  charmap.CodePage1140,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	10007: charmap.MacintoshCyrillic,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28603: charmap.ISO8859_13,
	28605: charmap.ISO8859_15,
	51932: japanese.EUCJP,
	51936: simplifiedchinese.GBK,
	52936: simplifiedchinese.HZGB2312,
	54936: simplifiedchinese.GB18030,
}

// Resolve maps a charset name to an x/text encoding. Names are tried as
// UTF-8 and ASCII spellings, then as code pages, then against the IANA and
// WHATWG registries.
func Resolve(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8":
		return unicode.UTF8, nil
	case "ASCII", "US-ASCII", "US", "ANSI_X3.4-1968", "646", "C", "POSIX":
		return ASCII, nil
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "UTF-16":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	}

	if cp, ok := codepage.Lookup(name); ok {
		if enc, ok := byCodepage[cp]; ok {
			return enc, nil
		}
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, types.Errorf(types.ErrKindEncodingUnsupported,
		fmt.Sprintf("sconv: unknown charset %q", name), nil)
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// XTextBackend opens handles backed by golang.org/x/text encodings.
type XTextBackend struct{}

// Open resolves both names and returns a handle that decodes from and
// encodes to them.
func (XTextBackend) Open(from, to string) (Handle, error) {
	fe, err := Resolve(from)
	if err != nil {
		return nil, err
	}
	te, err := Resolve(to)
	if err != nil {
		return nil, err
	}
	h := &xtextHandle{}
	if !isUTF8(fe) {
		h.dec = fe.NewDecoder()
		h.srcRepl = encodedReplacement(fe)
	}
	if !isUTF8(te) {
		h.enc = te.NewEncoder()
	}
	return h, nil
}

type xtextHandle struct {
	dec     transform.Transformer
	enc     transform.Transformer
	srcRepl []byte
}

func (h *xtextHandle) Decoder() transform.Transformer { return h.dec }
func (h *xtextHandle) Encoder() transform.Transformer { return h.enc }

// SourceReplacement returns the source charset's encoding of U+FFFD.
func (h *xtextHandle) SourceReplacement() []byte { return h.srcRepl }

func (h *xtextHandle) Close() error {
	h.dec = nil
	h.enc = nil
	return nil
}
