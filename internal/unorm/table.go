package unorm

import (
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Hangul composition constants (UAX #15).
const (
	hangulSBase  = 0xAC00
	hangulLBase  = 0x1100
	hangulVBase  = 0x1161
	hangulTBase  = 0x11A7
	hangulLCount = 19
	hangulVCount = 21
	hangulTCount = 28
	hangulNCount = hangulVCount * hangulTCount
	hangulSCount = hangulLCount * hangulNCount
)

// tableLimit bounds the scan for canonical pairs; no primary composite
// lies above it.
const tableLimit = 0x3FFFF

type composition struct {
	first, second, composed rune
}

type tables struct {
	pairs  []composition // sorted by (first, second)
	blocks [tableLimit>>8 + 1]bool
}

var (
	tablesOnce sync.Once
	compTables *tables
)

func loadTables() *tables {
	tablesOnce.Do(func() {
		compTables = buildTables()
	})
	return compTables
}

// buildTables derives the (first, second) -> composed table from the
// canonical decompositions bundled with x/text. A pair is kept only when NFC
// recomposes it, which leaves composition exclusions and singletons out.
func buildTables() *tables {
	t := &tables{}
	for r := rune(0); r <= tableLimit; r++ {
		if r >= hangulSBase && r < hangulSBase+hangulSCount {
			continue
		}
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		s := string(r)
		p := norm.NFD.PropertiesString(s)
		if p.CCC() != 0 {
			t.blocks[r>>8] = true
		}
		dec := p.Decomposition()
		if len(dec) == 0 {
			continue
		}
		last, size := utf8.DecodeLastRune(dec)
		if size == len(dec) {
			continue // singleton
		}
		head := norm.NFC.Bytes(dec[:len(dec)-size])
		first, n := utf8.DecodeRune(head)
		if n != len(head) {
			continue
		}
		if norm.NFC.String(string(first)+string(last)) != s {
			continue
		}
		t.pairs = append(t.pairs, composition{first: first, second: last, composed: r})
		t.blocks[last>>8] = true
	}
	// conjoining jamo compose algorithmically
	t.blocks[hangulVBase>>8] = true

	sort.Slice(t.pairs, func(i, j int) bool {
		a, b := t.pairs[i], t.pairs[j]
		if a.first != b.first {
			return a.first < b.first
		}
		return a.second < b.second
	})
	return t
}

// Compose returns the primary composite of a and b, if any. Hangul jamo are
// not in the table; AppendNFC composes them algorithmically.
func Compose(a, b rune) (rune, bool) {
	pairs := loadTables().pairs
	lo, hi := 0, len(pairs)-1
	for lo <= hi {
		m := (lo + hi) / 2
		p := pairs[m]
		switch {
		case p.first < a || (p.first == a && p.second < b):
			lo = m + 1
		case p.first > a || (p.first == a && p.second > b):
			hi = m - 1
		default:
			return p.composed, true
		}
	}
	return 0, false
}

// CCC returns the canonical combining class of r.
func CCC(r rune) uint8 {
	if r < 0x300 {
		return 0
	}
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// IsDecomposableBlock reports whether r lies in a 256-code-point block that
// holds a combining mark or the second half of a composition.
func IsDecomposableBlock(r rune) bool {
	if r < 0 || r > tableLimit {
		return false
	}
	return loadTables().blocks[r>>8]
}
