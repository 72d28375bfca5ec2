package sconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

func TestWideConverter_UTF8(t *testing.T) {
	w, err := NewWideConverter("UTF-8")
	require.NoError(t, err)

	var ws strbuf.WString
	require.NoError(t, w.AppendWCS(&ws, []byte("aé\U0001F600\x00tail")))
	assert.Equal(t, []rune{'a', 0xE9, 0x1F600}, ws.Elems())

	ws.Empty()
	err = w.AppendWCS(&ws, []byte("a\xffb"))
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Equal(t, []rune{'a', 0xFFFD, 'b'}, ws.Elems())

	var mbs strbuf.String
	require.NoError(t, w.AppendMBS(&mbs, []rune{'o', 'k', 0xE9}))
	assert.Equal(t, "oké", mbs.String())

	mbs.Empty()
	err = w.AppendMBS(&mbs, []rune{'x', 0xD800})
	assert.ErrorIs(t, err, types.ErrUnrepresentable)
	assert.Equal(t, "x?", mbs.String())

	var b [MaxCharLen]byte
	n, ok := w.EncodeRune(b[:], 0x4E2D)
	require.True(t, ok)
	assert.Equal(t, "中", string(b[:n]))
	_, ok = w.EncodeRune(b[:], 0xDC00)
	assert.False(t, ok)
}

func TestWideConverter_Legacy(t *testing.T) {
	w, err := NewWideConverter("ISO-8859-1")
	require.NoError(t, err)

	var ws strbuf.WString
	require.NoError(t, w.AppendWCS(&ws, []byte("caf\xe9")))
	assert.Equal(t, []rune{'c', 'a', 'f', 0xE9}, ws.Elems())

	var mbs strbuf.String
	err = w.AppendMBS(&mbs, []rune{'a', 0x4E2D, 'b', 0xE9})
	assert.ErrorIs(t, err, types.ErrUnrepresentable)
	assert.Equal(t, "a?b\xe9", mbs.String())

	var b [MaxCharLen]byte
	n, ok := w.EncodeRune(b[:], 0xE9)
	require.True(t, ok)
	assert.Equal(t, []byte{0xE9}, b[:n])
	_, ok = w.EncodeRune(b[:], 0x4E2D)
	assert.False(t, ok)
}

func TestWideConverter_EncodedReplacement(t *testing.T) {
	w, err := NewWideConverter("GB18030")
	require.NoError(t, err)

	var ws strbuf.WString
	require.NoError(t, w.AppendWCS(&ws, []byte{'a', 0x84, 0x31, 0xA4, 0x37}))
	assert.Equal(t, []rune{'a', 0xFFFD}, ws.Elems())

	ws.Empty()
	err = w.AppendWCS(&ws, []byte{'a', 0xFF})
	assert.True(t, types.IsLossy(err))
	assert.Equal(t, []rune{'a', 0xFFFD}, ws.Elems())
}

func TestWideConverter_Unknown(t *testing.T) {
	_, err := NewWideConverter("X-NO-SUCH-CHARSET")
	assert.ErrorIs(t, err, types.ErrEncodingUnsupported)
}
