package unorm

import (
	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

// writer appends to a string buffer and remembers the first failure so the
// composition loop can stay linear.
type writer struct {
	dst *strbuf.String
	err error
}

func (w *writer) rune(r rune) {
	if w.err == nil {
		w.err = strbuf.AppendRune(w.dst, r)
	}
}

type mark struct {
	r   rune
	ccc uint8
}

// composer holds the pending starter and the run of combining marks that
// follows it.
type composer struct {
	w       writer
	starter rune
	has     bool // starter is set
	marks   []mark
	buf     [types.MaxFollowingCombiners]mark
}

// push feeds the next decoded code point.
func (c *composer) push(r rune) {
	if IsDecomposableBlock(r) {
		if cl := CCC(r); cl != 0 {
			c.marks = append(c.marks, mark{r: r, ccc: cl})
			return
		}
	}

	c.composeMarks()
	// a starter is blocked from the previous one by any leftover mark
	if c.has && len(c.marks) == 0 && IsDecomposableBlock(r) {
		if comp, ok := composePair(c.starter, r); ok {
			c.starter = comp
			return
		}
	}
	c.flush()
	c.starter, c.has = r, true
}

// composeMarks puts the pending marks in canonical order and composes
// every unblocked mark into the starter until no more compose. Runs longer
// than the lookahead limit are reordered but not composed.
func (c *composer) composeMarks() {
	m := c.marks
	if len(m) == 0 {
		return
	}
	// stable insertion sort by combining class
	for i := 1; i < len(m); i++ {
		for j := i; j > 0 && m[j-1].ccc > m[j].ccc; j-- {
			m[j-1], m[j] = m[j], m[j-1]
		}
	}
	if !c.has || len(m) > types.MaxFollowingCombiners {
		return
	}

	for i := 0; i < len(m); {
		// sorted, so only the previous leftover mark can block m[i]
		if i > 0 && m[i-1].ccc >= m[i].ccc {
			i++
			continue
		}
		comp, ok := Compose(c.starter, m[i].r)
		if !ok {
			i++
			continue
		}
		c.starter = comp
		m = append(m[:i], m[i+1:]...)
		// earlier marks may compose with the new starter
		i = 0
	}
	c.marks = m
}

// flush writes the starter and its leftover marks.
func (c *composer) flush() {
	if c.has {
		c.w.rune(c.starter)
		c.has = false
	}
	for _, m := range c.marks {
		c.w.rune(m.r)
	}
	c.marks = c.buf[:0]
}

// composePair composes two adjacent starters, Hangul jamo included.
func composePair(a, b rune) (rune, bool) {
	if li := a - hangulLBase; li >= 0 && li < hangulLCount {
		if vi := b - hangulVBase; vi >= 0 && vi < hangulVCount {
			return hangulSBase + (li*hangulVCount+vi)*hangulTCount, true
		}
		return 0, false
	}
	if si := a - hangulSBase; si >= 0 && si < hangulSCount && si%hangulTCount == 0 {
		if ti := b - hangulTBase; ti > 0 && ti < hangulTCount {
			return a + ti, true
		}
		return 0, false
	}
	return Compose(a, b)
}

// AppendNFC appends src, normalized to Unicode Normalization Form C, to dst.
//
// The input is decoded with CESU-8 awareness, so surrogate pairs encoded as
// two 3-byte sequences come out as one 4-byte sequence. Invalid sequences
// become U+FFFD and the call returns types.ErrMalformedInput after the whole
// input has been written. Decoding stops at a NUL byte.
//
// Combining marks are put in canonical order before composition, so the
// result is stable: running it through AppendNFC again changes nothing.
// Precomposed input is not decomposed first.
func AppendNFC(dst *strbuf.String, src []byte) error {
	if err := dst.Grow(len(src)); err != nil {
		return err
	}
	c := &composer{w: writer{dst: dst}}
	c.marks = c.buf[:0]
	lossy := false

	s := src
	for len(s) > 0 && c.w.err == nil {
		r, n := ucodec.DecodeCESU8(s)
		if n == 0 {
			break
		}
		if n < 0 {
			n = -n
			lossy = true
		}
		s = s[n:]
		c.push(r)
	}
	c.composeMarks()
	c.flush()

	if c.w.err != nil {
		return c.w.err
	}
	if lossy {
		return types.ErrMalformedInput
	}
	return nil
}

// ToFormC returns src normalized to Form C in a new slice.
func ToFormC(src []byte) ([]byte, error) {
	var b strbuf.String
	err := AppendNFC(&b, src)
	return append([]byte(nil), b.Elems()...), err
}
