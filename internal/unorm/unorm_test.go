package unorm

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

func TestCompose(t *testing.T) {
	c, ok := Compose('e', 0x0301)
	require.True(t, ok)
	assert.Equal(t, rune(0x00E9), c)

	c, ok = Compose(0x00FC, 0x0304) // ü + macron
	require.True(t, ok)
	assert.Equal(t, rune(0x01D6), c)

	_, ok = Compose('x', 0x0301)
	assert.False(t, ok)

	// U+0958 is a composition exclusion
	_, ok = Compose(0x0915, 0x093C)
	assert.False(t, ok)
}

func TestCCCAndBlocks(t *testing.T) {
	assert.Equal(t, uint8(230), CCC(0x0301))
	assert.Equal(t, uint8(220), CCC(0x0323))
	assert.Equal(t, uint8(0), CCC('a'))
	assert.True(t, IsDecomposableBlock(0x0301))
	assert.True(t, IsDecomposableBlock(0x1161))
	assert.False(t, IsDecomposableBlock('a'))
	assert.False(t, IsDecomposableBlock(0x4E00))
}

func TestToFormC(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "hello", "hello"},
		{"e acute", "e\u0301", "\u00e9"},
		{"already composed", "caf\u00e9", "caf\u00e9"},
		{"two marks in canonical order", "s\u0323\u0307", "\u1e69"},
		{"hangul LV", "\u1100\u1161", "\uac00"},
		{"hangul LVT", "\u1100\u1161\u11a8", "\uac01"},
		{"hangul LV plus T", "\uac00\u11a8", "\uac01"},
		{"no composition", "x\u0301", "x\u0301"},
		{"blocked mark", "a\u0301\u0301", "\u00e1\u0301"},
		{"cjk passes", "\u65e5\u672c", "\u65e5\u672c"},
		{"trailing text", "A\u030aB", "\u00c5B"},
		{"three step", "A\u030a\u0301", "\u01fa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFormC([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestToFormC_MatchesNormForCommonText(t *testing.T) {
	inputs := []string{
		"Ame\u0301lie",
		"n\u0303o\u0308",
		"A\u030a\u0301",
		"\u1100\u1161\u11a8\u1100\u1162",
		"a\u0328\u0301",
		"o\u031b\u0323\u0302",
		"o\u0327\u0303\u031b\u0304",
		"O\u0f71\u0302\u0323\u0303",
		"s\u0307\u0323",
	}
	for _, in := range inputs {
		got, err := ToFormC([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, norm.NFC.String(in), string(got), "input %+q", in)
	}
}

func TestToFormC_CESU8AndMalformed(t *testing.T) {
	// CESU-8 pair for U+1F600 collapses into one 4-byte sequence
	got, err := ToFormC([]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80})
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", string(got))

	got, err = ToFormC([]byte{'a', 0xFF, 'b'})
	require.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Equal(t, "a\ufffdb", string(got))

	got, err = ToFormC([]byte{0xED, 0xA0, 0x80})
	require.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Equal(t, "\ufffd", string(got))

	got, err = ToFormC([]byte("e\u0301\x00ignored"))
	require.NoError(t, err)
	assert.Equal(t, "\u00e9", string(got))
}

// Precomposed letters and jamo mixed with marks of differing classes, so
// runs arrive out of canonical order and some marks block others.
var (
	idempotentBases = []rune{
		'a', 'e', 'o', 'A', 'O', 'u', 's', 'n', ' ',
		0x00C5, 0x01A1, 0x1EA1, 0x0915, 0x3046, 0x05D1,
		0x1100, 0x1161, 0x11A8, 0xAC00, 0xAC01,
	}
	idempotentMarks = []rune{
		0x0300, 0x0301, 0x0302, 0x0303, 0x0304, 0x0308, 0x030A, 0x031B,
		0x0323, 0x0327, 0x0328, 0x0F71, 0x0F72, 0x0345, 0x05B0, 0x0655,
		0x093C, 0x3099,
	}
)

func TestToFormC_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

	check := func(t *testing.T, in []byte) {
		t.Helper()
		once, _ := ToFormC(in)
		require.True(t, utf8.Valid(once), "input %x", in)
		twice, err := ToFormC(once)
		require.NoError(t, err, "input %x", in)
		require.Equal(t, once, twice, "input %x", in)
	}

	t.Run("reported sequences", func(t *testing.T) {
		check(t, []byte("o\u0327\u0303\u031b\u0304"))
		check(t, []byte("O\u0f71\u0302\u0323\u0303"))
		check(t, []byte("a\u0301\u0301\u0301"))
		check(t, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80, 0xED, 0xB8, 0x80})
	})

	t.Run("combining runs", func(t *testing.T) {
		for i := 0; i < 5000; i++ {
			var b []byte
			for s := rng.Intn(3) + 1; s > 0; s-- {
				b = utf8.AppendRune(b, idempotentBases[rng.Intn(len(idempotentBases))])
				for m := rng.Intn(7); m > 0; m-- {
					b = utf8.AppendRune(b, idempotentMarks[rng.Intn(len(idempotentMarks))])
				}
			}
			check(t, b)
		}
	})

	t.Run("long runs", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			b := []byte("a")
			for m := types.MaxFollowingCombiners + rng.Intn(4) - 1; m > 0; m-- {
				b = utf8.AppendRune(b, idempotentMarks[rng.Intn(len(idempotentMarks))])
			}
			check(t, b)
		}
	})

	t.Run("random bytes", func(t *testing.T) {
		for i := 0; i < 5000; i++ {
			b := make([]byte, rng.Intn(24))
			rng.Read(b)
			check(t, b)
		}
	})
}

func TestAppendNFC_AppendsToExisting(t *testing.T) {
	var b strbuf.String
	require.NoError(t, b.Append([]byte("pre:")))
	require.NoError(t, AppendNFC(&b, []byte("e\u0301")))
	assert.Equal(t, "pre:\u00e9", b.String())
}

func TestHFSDecomposer(t *testing.T) {
	got, err := ToFormD([]byte("caf\u00e9"))
	require.NoError(t, err)
	assert.Equal(t, "cafe\u0301", string(got))

	got, err = ToFormD([]byte("\uac01"))
	require.NoError(t, err)
	assert.Equal(t, "\u1100\u1161\u11a8", string(got))

	// CJK compatibility ideographs are left alone
	got, err = ToFormD([]byte("\uf900"))
	require.NoError(t, err)
	assert.Equal(t, "\uf900", string(got))

	got, err = ToFormD([]byte{'a', 0x80})
	require.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Equal(t, "a\ufffd", string(got))
}

func TestNFCOfNFDRoundTrip(t *testing.T) {
	for _, s := range []string{"r\u00e9sum\u00e9", "\u00c5ngstr\u00f6m", "\ud55c\uad6d\uc5b4"} {
		d, err := ToFormD([]byte(s))
		require.NoError(t, err)
		c, err := ToFormC(d)
		require.NoError(t, err)
		assert.Equal(t, s, string(c))
	}
}

func BenchmarkToFormC(b *testing.B) {
	in := []byte("Ame\u0301lie Poulain \u1100\u1161\u11a8 s\u0323\u0307")
	var out strbuf.String
	for i := 0; i < b.N; i++ {
		out.Empty()
		_ = AppendNFC(&out, in)
	}
}
