package mstring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/archstr/pkg/sconv"
	"github.com/joshuapare/archstr/pkg/types"
)

// snapshot is the observable state of an MString.
type snapshot struct {
	Forms Form
	MBS   string
	UTF8  string
	WCS   []rune
}

func snap(m *MString) snapshot {
	s := snapshot{Forms: m.set}
	if m.Has(FormMBS) {
		s.MBS = m.mbs.String()
	}
	if m.Has(FormUTF8) {
		s.UTF8 = m.utf8.String()
	}
	if m.Has(FormWCS) {
		s.WCS = append([]rune{}, m.wcs.Elems()...)
	}
	return s
}

func session(t *testing.T, charset string) *sconv.Session {
	t.Helper()
	s := sconv.NewSession(sconv.Options{Charset: charset})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFormString(t *testing.T) {
	assert.Equal(t, "none", Form(0).String())
	assert.Equal(t, "mbs", FormMBS.String())
	assert.Equal(t, "mbs|wcs|utf8", (FormMBS | FormWCS | FormUTF8).String())
}

func TestCopyMBSThenUTF8(t *testing.T) {
	s := session(t, "ISO-8859-1")
	var m MString
	require.NoError(t, m.CopyMBS([]byte("hello")))
	assert.Equal(t, FormMBS, m.Forms())

	got, err := m.UTF8(s)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	want := snapshot{Forms: FormMBS | FormUTF8, MBS: "hello", UTF8: "hello"}
	if diff := cmp.Diff(want, snap(&m)); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestUTF8FromLatin1MBS(t *testing.T) {
	s := session(t, "ISO-8859-1")
	var m MString
	require.NoError(t, m.CopyMBS([]byte("caf\xe9")))

	got, err := m.UTF8(s)
	require.NoError(t, err)
	assert.Equal(t, "café", string(got))

	w, err := m.WCS(s)
	require.NoError(t, err)
	assert.Equal(t, []rune{'c', 'a', 'f', 0xE9}, w)
	assert.True(t, m.Has(FormMBS|FormWCS|FormUTF8))
}

func TestCopyStopsAtNUL(t *testing.T) {
	var m MString
	require.NoError(t, m.CopyMBS([]byte("ab\x00cd")))
	assert.Equal(t, "ab", m.mbs.String())

	require.NoError(t, m.CopyWCS([]rune{'x', 0, 'y'}))
	assert.Equal(t, []rune{'x'}, m.wcs.Elems())
	assert.Equal(t, FormWCS, m.Forms())
}

func TestNilCopyClears(t *testing.T) {
	var m MString
	require.NoError(t, m.CopyUTF8([]byte("x")))
	require.NoError(t, m.CopyUTF8(nil))
	assert.Equal(t, Form(0), m.Forms())

	require.NoError(t, m.CopyMBS([]byte("x")))
	require.NoError(t, m.CopyMBS(nil))
	assert.Equal(t, Form(0), m.Forms())

	require.NoError(t, m.CopyWCS([]rune("x")))
	require.NoError(t, m.CopyWCS(nil))
	assert.Equal(t, Form(0), m.Forms())

	s := session(t, "UTF-8")
	got, err := m.UTF8(s)
	assert.NoError(t, err)
	assert.Nil(t, got)
	w, err := m.WCS(s)
	assert.NoError(t, err)
	assert.Nil(t, w)
	b, err := m.MBS(s)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestCopyInvalidatesOtherForms(t *testing.T) {
	s := session(t, "UTF-8")
	var m MString
	require.NoError(t, m.UpdateUTF8(s, []byte("first")))
	assert.Equal(t, FormMBS|FormWCS|FormUTF8, m.Forms())

	require.NoError(t, m.CopyMBS([]byte("second")))
	assert.Equal(t, FormMBS, m.Forms())

	got, err := m.UTF8(s)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	w, err := m.WCS(s)
	require.NoError(t, err)
	assert.Equal(t, []rune("second"), w)
}

func TestUpdateUTF8AllForms(t *testing.T) {
	s := session(t, "UTF-8")
	var m MString
	in := "naïve 中"
	require.NoError(t, m.UpdateUTF8(s, []byte(in)))

	want := snapshot{
		Forms: FormMBS | FormWCS | FormUTF8,
		MBS:   in,
		UTF8:  in,
		WCS:   []rune(in),
	}
	if diff := cmp.Diff(want, snap(&m)); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateUTF8KeepsUTF8OnFailure(t *testing.T) {
	for _, cs := range []string{"US-ASCII", "ISO-8859-1"} {
		t.Run(cs, func(t *testing.T) {
			s := session(t, cs)
			var m MString
			in := "a中"
			err := m.UpdateUTF8(s, []byte(in))
			require.Error(t, err)
			assert.True(t, types.IsLossy(err))

			assert.True(t, m.Has(FormUTF8))
			assert.False(t, m.Has(FormMBS))
			assert.False(t, m.Has(FormWCS))

			got, err := m.UTF8(s)
			require.NoError(t, err)
			assert.Equal(t, in, string(got))
		})
	}
}

func TestMBSFromWCS(t *testing.T) {
	s := session(t, "ISO-8859-1")
	var m MString
	require.NoError(t, m.CopyWCS([]rune{'c', 'a', 'f', 0xE9}))

	got, err := m.MBS(s)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", string(got))
	assert.Equal(t, FormWCS|FormMBS, m.Forms())

	u, err := m.UTF8(s)
	require.NoError(t, err)
	assert.Equal(t, "café", string(u))
}

func TestMBSFromUTF8SetsMBS(t *testing.T) {
	s := session(t, "ISO-8859-1")
	var m MString
	require.NoError(t, m.CopyUTF8([]byte("café")))

	got, err := m.MBS(s)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", string(got))
	assert.Equal(t, FormUTF8|FormMBS, m.Forms())
}

func TestLossyDerivationIsNotCached(t *testing.T) {
	s := session(t, "ISO-8859-1")
	var m MString
	require.NoError(t, m.CopyWCS([]rune{'a', 0x4E2D}))

	got, err := m.MBS(s)
	require.Error(t, err)
	assert.True(t, types.IsLossy(err))
	assert.Equal(t, "a?", string(got))
	assert.False(t, m.Has(FormMBS))
	assert.True(t, m.Has(FormWCS))
}

func TestWCSFromUTF8(t *testing.T) {
	s := session(t, "UTF-8")
	var m MString
	require.NoError(t, m.CopyUTF8([]byte("é\U0001F600")))

	w, err := m.WCS(s)
	require.NoError(t, err)
	assert.Equal(t, []rune{0xE9, 0x1F600}, w)
	assert.Equal(t, FormUTF8|FormWCS, m.Forms())
}

func TestWCSFromInvalidUTF8(t *testing.T) {
	s := session(t, "UTF-8")
	var m MString
	require.NoError(t, m.CopyUTF8([]byte("a\xffb")))

	w, err := m.WCS(s)
	require.Error(t, err)
	assert.True(t, types.IsLossy(err))
	assert.Equal(t, []rune{'a', 0xFFFD, 'b'}, w)
	assert.False(t, m.Has(FormWCS))
}

func TestUTF8FromWCSReplacesSurrogates(t *testing.T) {
	s := session(t, "UTF-8")
	var m MString
	require.NoError(t, m.CopyWCS([]rune{'a', 0xD800, 'b'}))

	got, err := m.UTF8(s)
	require.Error(t, err)
	assert.True(t, types.IsLossy(err))
	assert.Equal(t, "a�b", string(got))
	assert.False(t, m.Has(FormUTF8))
}

func TestCopyMBSWithConversion(t *testing.T) {
	s := session(t, "UTF-8")
	c, err := s.ConversionFrom("ISO-8859-1", false)
	require.NoError(t, err)

	var m MString
	require.NoError(t, m.CopyMBSWithConversion([]byte("caf\xe9"), c))
	assert.Equal(t, FormMBS, m.Forms())
	assert.Equal(t, "café", m.mbs.String())

	// nil conversion copies verbatim
	require.NoError(t, m.CopyMBSWithConversion([]byte("raw"), nil))
	assert.Equal(t, "raw", m.mbs.String())
}

func TestCopyMBSWithConversionFailureClears(t *testing.T) {
	s := session(t, "UTF-8")
	c, err := s.ConversionTo("ISO-8859-1", false)
	require.NoError(t, err)

	var m MString
	require.NoError(t, m.CopyUTF8([]byte("keep")))
	err = m.CopyMBSWithConversion([]byte("中"), c)
	require.Error(t, err)
	assert.Equal(t, Form(0), m.Forms())
}

func TestMBSWithConversion(t *testing.T) {
	s := session(t, "UTF-8")
	c, err := s.ConversionTo("ISO-8859-1", false)
	require.NoError(t, err)

	var m MString
	require.NoError(t, m.CopyMBS([]byte("café")))

	got, err := m.MBSWithConversion(s, c)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", string(got))

	got, err = m.MBSWithConversion(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "café", string(got))
}

func TestMBSWithConversionDerivesFromWCS(t *testing.T) {
	s := session(t, "UTF-8")
	c, err := s.ConversionTo("ISO-8859-1", false)
	require.NoError(t, err)

	var m MString
	require.NoError(t, m.CopyWCS([]rune{'n', 0xE9}))
	got, err := m.MBSWithConversion(s, c)
	require.NoError(t, err)
	assert.Equal(t, "n\xe9", string(got))
	assert.True(t, m.Has(FormMBS|FormWCS))
}

func TestCopyFromAndClean(t *testing.T) {
	s := session(t, "UTF-8")
	var a, b MString
	require.NoError(t, a.UpdateUTF8(s, []byte("copy me")))
	require.NoError(t, b.CopyFrom(&a))

	if diff := cmp.Diff(snap(&a), snap(&b)); diff != "" {
		t.Errorf("copy mismatch (-src +dst):\n%s", diff)
	}

	// independent storage
	require.NoError(t, a.CopyMBS([]byte("changed")))
	assert.Equal(t, "copy me", b.mbs.String())

	b.Clean()
	assert.Equal(t, Form(0), b.Forms())
	assert.Equal(t, 0, b.mbs.Cap())
	assert.Equal(t, 0, b.wcs.Cap())
}
