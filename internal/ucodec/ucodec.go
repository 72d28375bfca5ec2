// Package ucodec converts between UTF-8/CESU-8 byte sequences and Unicode
// code points.
//
// The decoders report how many bytes they consumed. A negative count means
// the sequence was invalid and the returned rune is U+FFFD; the magnitude is
// how many bytes the replacement covers. A zero count marks the end of the
// string (empty input or a NUL lead byte).
package ucodec

// Unicode limits.
const (
	MaxRune         = 0x10FFFF
	ReplacementChar = 0xFFFD

	highSurrogateStart = 0xD800
	highSurrogateEnd   = 0xDBFF
	lowSurrogateStart  = 0xDC00
	lowSurrogateEnd    = 0xDFFF
	surrogateBase      = 0x10000
)

// ReplacementUTF8 is U+FFFD encoded as UTF-8.
var ReplacementUTF8 = []byte{0xEF, 0xBF, 0xBD}

// seqLen is the sequence length announced by each lead byte; 0 is an
// invalid lead.
var seqLen = [256]uint8{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 00 - 0F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 10 - 1F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 20 - 2F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 30 - 3F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 40 - 4F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 50 - 5F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 60 - 6F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 70 - 7F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 80 - 8F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 90 - 9F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // A0 - AF
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // B0 - BF
	0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // C0 - CF
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // D0 - DF
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // E0 - EF
	4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // F0 - FF
}

func isCont(c byte) bool { return c&0xC0 == 0x80 }

// contRun returns how many of the first cnt bytes of p form a lead byte
// followed by continuation bytes.
func contRun(p []byte, cnt int) int {
	if cnt > len(p) {
		cnt = len(p)
	}
	for i := 1; i < cnt; i++ {
		if !isCont(p[i]) {
			return i
		}
	}
	return cnt
}

// invalidLeadLen is how many bytes a replacement for an invalid lead byte
// swallows, following the recommended practice for replacement characters.
func invalidLeadLen(c byte) int {
	switch {
	case c == 0xC0 || c == 0xC1:
		return 2
	case c >= 0xF5 && c <= 0xF7:
		return 4
	case c >= 0xF8 && c <= 0xFB:
		return 5
	case c == 0xFC || c == 0xFD:
		return 6
	default:
		return 1
	}
}

// Decode decodes one UTF-8 sequence leniently: encoded surrogates are
// accepted as code points.
func Decode(p []byte) (rune, int) {
	if len(p) == 0 || p[0] == 0 {
		return 0, 0
	}
	c := p[0]
	cnt := int(seqLen[c])

	if cnt == 0 {
		return ReplacementChar, -contRun(p, invalidLeadLen(c))
	}
	if len(p) < cnt {
		return ReplacementChar, -contRun(p, cnt)
	}

	var r rune
	switch cnt {
	case 1:
		return rune(c & 0x7F), 1
	case 2:
		if !isCont(p[1]) {
			return ReplacementChar, -1
		}
		return rune(c&0x1F)<<6 | rune(p[1]&0x3F), 2
	case 3:
		if !isCont(p[1]) {
			return ReplacementChar, -1
		}
		if !isCont(p[2]) {
			return ReplacementChar, -2
		}
		r = rune(c&0x0F)<<12 | rune(p[1]&0x3F)<<6 | rune(p[2]&0x3F)
		if r < 0x800 {
			return ReplacementChar, -3 // overlong
		}
	case 4:
		if !isCont(p[1]) {
			return ReplacementChar, -1
		}
		if !isCont(p[2]) {
			return ReplacementChar, -2
		}
		if !isCont(p[3]) {
			return ReplacementChar, -3
		}
		r = rune(c&0x07)<<18 | rune(p[1]&0x3F)<<12 | rune(p[2]&0x3F)<<6 | rune(p[3]&0x3F)
		if r < 0x10000 {
			return ReplacementChar, -4 // overlong
		}
	}

	if r > MaxRune {
		return ReplacementChar, -cnt
	}
	return r, cnt
}

// DecodeStrict decodes one UTF-8 sequence and rejects encoded surrogates.
// A rejected surrogate decodes to U+FFFD with a count of -3, like any other
// invalid sequence; use DecodeCESU8 to accept surrogate pairs.
func DecodeStrict(p []byte) (rune, int) {
	r, n := Decode(p)
	if n == 3 && IsSurrogate(r) {
		return ReplacementChar, -3
	}
	return r, n
}

// DecodeCESU8 decodes one UTF-8 sequence, merging a CESU-8 surrogate pair
// (two 3-byte sequences) into one supplementary code point. A merged pair
// reports a count of 6. Lone surrogates decode to U+FFFD.
func DecodeCESU8(p []byte) (rune, int) {
	r, n := Decode(p)
	if n != 3 {
		return r, n
	}
	if IsLowSurrogate(r) {
		return ReplacementChar, -3
	}
	if !IsHighSurrogate(r) {
		return r, n
	}
	if len(p) < 6 {
		return ReplacementChar, -3
	}
	r2, n2 := Decode(p[3:])
	if n2 != 3 || !IsLowSurrogate(r2) {
		return ReplacementChar, -3
	}
	return CombineSurrogates(r, r2), 6
}

// RuneLen returns how many bytes Encode writes for r.
func RuneLen(r rune) int {
	switch {
	case r < 0:
		return 3
	case r <= 0x7F:
		return 1
	case r <= 0x7FF:
		return 2
	case r <= 0xFFFF:
		return 3
	case r <= MaxRune:
		return 4
	default:
		return 3
	}
}

// Encode writes the UTF-8 form of r into p, which must hold at least
// RuneLen(r) bytes, and returns the byte count. Code points beyond U+10FFFF
// are written as U+FFFD. Surrogates are not checked.
func Encode(p []byte, r rune) int {
	switch {
	case r < 0:
		return copy(p, ReplacementUTF8)
	case r <= 0x7F:
		p[0] = byte(r)
		return 1
	case r <= 0x7FF:
		p[0] = 0xC0 | byte(r>>6)&0x1F
		p[1] = 0x80 | byte(r)&0x3F
		return 2
	case r <= 0xFFFF:
		p[0] = 0xE0 | byte(r>>12)&0x0F
		p[1] = 0x80 | byte(r>>6)&0x3F
		p[2] = 0x80 | byte(r)&0x3F
		return 3
	case r <= MaxRune:
		p[0] = 0xF0 | byte(r>>18)&0x07
		p[1] = 0x80 | byte(r>>12)&0x3F
		p[2] = 0x80 | byte(r>>6)&0x3F
		p[3] = 0x80 | byte(r)&0x3F
		return 4
	default:
		return copy(p, ReplacementUTF8)
	}
}

// AppendRune appends the UTF-8 form of r to p.
func AppendRune(p []byte, r rune) []byte {
	var tmp [4]byte
	n := Encode(tmp[:], r)
	return append(p, tmp[:n]...)
}
