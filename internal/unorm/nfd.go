package unorm

import (
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

// Decomposer produces canonical decompositions (Form D).
type Decomposer interface {
	AppendNFD(dst *strbuf.String, src []byte) error
}

// HFSDecomposer decomposes the way HFS+ stores filenames: canonical
// decomposition everywhere except the General Punctuation through CJK
// Symbols range and the CJK compatibility ideographs, which stay as they
// are. It uses the decomposition tables bundled with x/text, so it works on
// every platform.
type HFSDecomposer struct{}

func hfsExcluded(r rune) bool {
	return (r >= 0x2000 && r <= 0x2FFF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FAFF)
}

// AppendNFD appends the decomposition of src to dst. Malformed input and
// lone surrogates become U+FFFD and the call returns
// types.ErrMalformedInput once the rest has been written.
func (HFSDecomposer) AppendNFD(dst *strbuf.String, src []byte) error {
	var (
		run   []byte // valid UTF-8 awaiting decomposition
		lossy bool
	)
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		err := dst.Append(norm.NFD.Bytes(run))
		run = run[:0]
		return err
	}

	s := src
	for len(s) > 0 {
		r, n := ucodec.DecodeCESU8(s)
		if n == 0 {
			break
		}
		if n < 0 {
			lossy = true
			n = -n
		}
		s = s[n:]

		if hfsExcluded(r) {
			if err := flush(); err != nil {
				return err
			}
			if err := strbuf.AppendRune(dst, r); err != nil {
				return err
			}
			continue
		}
		run = ucodec.AppendRune(run, r)
	}
	if err := flush(); err != nil {
		return err
	}
	if lossy {
		return types.ErrMalformedInput
	}
	return nil
}

// ToFormD returns src decomposed by HFSDecomposer in a new slice.
func ToFormD(src []byte) ([]byte, error) {
	var b strbuf.String
	err := HFSDecomposer{}.AppendNFD(&b, src)
	return append([]byte(nil), b.Elems()...), err
}
