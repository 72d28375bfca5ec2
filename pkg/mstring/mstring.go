// Package mstring keeps up to three forms of the same text: bytes in the
// session charset (MBS), wide characters (WCS) and UTF-8.
//
// Copy operations store one form and drop the others. Getters return a
// cached form in O(1) or derive it from whichever form is present, caching
// the result only when the derivation was clean. A lossy derivation still
// returns its degraded output together with the error.
package mstring

import (
	"strings"

	"github.com/joshuapare/archstr/internal/ucodec"
	"github.com/joshuapare/archstr/pkg/sconv"
	"github.com/joshuapare/archstr/pkg/strbuf"
	"github.com/joshuapare/archstr/pkg/types"
)

// Form is a set of representations.
type Form uint8

const (
	FormMBS Form = 1 << iota
	FormWCS
	FormUTF8
)

func (f Form) String() string {
	var parts []string
	if f&FormMBS != 0 {
		parts = append(parts, "mbs")
	}
	if f&FormWCS != 0 {
		parts = append(parts, "wcs")
	}
	if f&FormUTF8 != 0 {
		parts = append(parts, "utf8")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MString is a string held in several representations. The zero value is
// an empty string with no forms set.
type MString struct {
	mbs         strbuf.String
	wcs         strbuf.WString
	utf8        strbuf.String
	mbsInLocale strbuf.String // output of MBSWithConversion
	set         Form
}

// Forms returns the forms currently valid.
func (m *MString) Forms() Form { return m.set }

// Has reports whether all forms in f are valid.
func (m *MString) Has(f Form) bool { return m.set&f == f }

// Clean releases every form.
func (m *MString) Clean() {
	m.wcs.Free()
	m.mbs.Free()
	m.utf8.Free()
	m.mbsInLocale.Free()
	m.set = 0
}

// CopyFrom makes m a copy of src.
func (m *MString) CopyFrom(src *MString) error {
	m.set = src.set
	if err := m.mbs.Copy(src.mbs.Elems()); err != nil {
		m.set = 0
		return err
	}
	if err := m.utf8.Copy(src.utf8.Elems()); err != nil {
		m.set = 0
		return err
	}
	if err := m.wcs.Copy(src.wcs.Elems()); err != nil {
		m.set = 0
		return err
	}
	return nil
}

// CopyMBS stores p, up to its first NUL byte, as the only form. A nil p
// clears the string.
func (m *MString) CopyMBS(p []byte) error {
	if p == nil {
		m.set = 0
		return nil
	}
	m.set = FormMBS
	m.utf8.Empty()
	m.wcs.Empty()
	if err := m.mbs.NCopy(p, len(p)); err != nil {
		m.set = 0
		return err
	}
	return nil
}

// CopyMBSWithConversion converts p with c and stores the result as the MBS
// form. On any failure, lossy ones included, no form is left set.
func (m *MString) CopyMBSWithConversion(p []byte, c *sconv.Conv) error {
	if p == nil {
		m.set = 0
		return nil
	}
	m.mbs.Empty()
	m.wcs.Empty()
	m.utf8.Empty()
	if err := sconv.CopyWithConversion(&m.mbs, p, c); err != nil {
		m.set = 0
		return err
	}
	m.set = FormMBS
	return nil
}

// CopyWCS stores w, up to its first zero rune, as the only form. A nil w
// clears the string.
func (m *MString) CopyWCS(w []rune) error {
	if w == nil {
		m.set = 0
		return nil
	}
	m.set = FormWCS
	m.mbs.Empty()
	m.utf8.Empty()
	if err := m.wcs.NCopy(w, len(w)); err != nil {
		m.set = 0
		return err
	}
	return nil
}

// CopyUTF8 stores p, up to its first NUL byte, as the only form. A nil p
// clears the string.
func (m *MString) CopyUTF8(p []byte) error {
	if p == nil {
		m.set = 0
		return nil
	}
	m.set = FormUTF8
	m.mbs.Empty()
	m.wcs.Empty()
	if err := m.utf8.NCopy(p, len(p)); err != nil {
		m.set = 0
		return err
	}
	return nil
}

// UpdateUTF8 stores p as UTF-8 and eagerly derives the MBS and WCS forms.
// It returns the first failure, keeping whatever forms were produced before
// it: the UTF-8 form always survives.
func (m *MString) UpdateUTF8(s *sconv.Session, p []byte) error {
	if p == nil {
		m.set = 0
		return nil
	}
	if err := m.utf8.NCopy(p, len(p)); err != nil {
		m.set = 0
		return err
	}
	m.mbs.Empty()
	m.wcs.Empty()
	m.set = FormUTF8

	c, err := s.ConversionFrom("UTF-8", true)
	if err != nil {
		return err
	}
	if err := c.Copy(&m.mbs, m.utf8.Elems()); err != nil {
		return err
	}
	m.set |= FormMBS

	if err := s.Wide().AppendWCS(&m.wcs, m.mbs.Elems()); err != nil {
		return err
	}
	m.set |= FormWCS
	return nil
}

// UTF8 returns the UTF-8 form, deriving it from MBS or WCS when needed.
// It returns nil, nil when no form is set.
func (m *MString) UTF8(s *sconv.Session) ([]byte, error) {
	switch {
	case m.Has(FormUTF8):
		return m.utf8.Elems(), nil
	case m.Has(FormMBS):
		c, err := s.ConversionTo("UTF-8", true)
		if err != nil {
			return nil, err
		}
		err = c.Copy(&m.utf8, m.mbs.Elems())
		return m.derived(FormUTF8, m.utf8.Elems(), err)
	case m.Has(FormWCS):
		err := appendWCSAsUTF8(&m.utf8, m.wcs.Elems())
		return m.derived(FormUTF8, m.utf8.Elems(), err)
	}
	return nil, nil
}

// MBS returns the session-charset form, deriving it from WCS or UTF-8 when
// needed. A failed WCS derivation falls back to UTF-8.
func (m *MString) MBS(s *sconv.Session) ([]byte, error) {
	if m.Has(FormMBS) {
		return m.mbs.Elems(), nil
	}

	var wcsErr error
	if m.Has(FormWCS) {
		m.mbs.Empty()
		wcsErr = s.Wide().AppendMBS(&m.mbs, m.wcs.Elems())
		if wcsErr == nil {
			m.set |= FormMBS
			return m.mbs.Elems(), nil
		}
	}
	if m.Has(FormUTF8) {
		c, err := s.ConversionFrom("UTF-8", true)
		if err != nil {
			return nil, err
		}
		err = c.Copy(&m.mbs, m.utf8.Elems())
		return m.derived(FormMBS, m.mbs.Elems(), err)
	}
	if wcsErr != nil {
		return m.derived(FormMBS, m.mbs.Elems(), wcsErr)
	}
	return nil, nil
}

// WCS returns the wide form, deriving it from MBS or UTF-8 when needed.
func (m *MString) WCS(s *sconv.Session) ([]rune, error) {
	switch {
	case m.Has(FormWCS):
		return m.wcs.Elems(), nil
	case m.Has(FormMBS):
		m.wcs.Empty()
		err := s.Wide().AppendWCS(&m.wcs, m.mbs.Elems())
		return derivedRunes(m, err)
	case m.Has(FormUTF8):
		m.wcs.Empty()
		err := appendUTF8AsWCS(&m.wcs, m.utf8.Elems())
		return derivedRunes(m, err)
	}
	return nil, nil
}

// MBSWithConversion returns the MBS form converted by c, for callers that
// need a specific charset such as the one an archive format mandates. A nil
// c returns the MBS form itself.
func (m *MString) MBSWithConversion(s *sconv.Session, c *sconv.Conv) ([]byte, error) {
	if !m.Has(FormMBS) {
		_, err := m.MBS(s)
		if !m.Has(FormMBS) {
			return nil, err
		}
	}
	if c == nil {
		return m.mbs.Elems(), nil
	}
	err := c.Copy(&m.mbsInLocale, m.mbs.Elems())
	return m.mbsInLocale.Elems(), err
}

// derived caches form f after a clean derivation. Lossy results are
// returned without being cached; hard failures return no data.
func (m *MString) derived(f Form, out []byte, err error) ([]byte, error) {
	if err == nil {
		m.set |= f
		return out, nil
	}
	if types.IsLossy(err) {
		return out, err
	}
	return nil, err
}

func derivedRunes(m *MString, err error) ([]rune, error) {
	if err == nil {
		m.set |= FormWCS
		return m.wcs.Elems(), nil
	}
	if types.IsLossy(err) {
		return m.wcs.Elems(), err
	}
	return nil, err
}

// appendWCSAsUTF8 encodes wide characters, which are Unicode code points,
// straight to UTF-8. Surrogates and out-of-range values become U+FFFD.
func appendWCSAsUTF8(dst *strbuf.String, w []rune) error {
	dst.Empty()
	if err := dst.Grow(len(w)); err != nil {
		return err
	}
	bad := 0
	for _, r := range w {
		if ucodec.IsSurrogate(r) || r < 0 || r > ucodec.MaxRune {
			r = ucodec.ReplacementChar
			bad++
		}
		if err := strbuf.AppendRune(dst, r); err != nil {
			return err
		}
	}
	if bad > 0 {
		return types.Errorf(types.ErrKindMalformedInput, "mstring: invalid wide characters replaced", nil)
	}
	return nil
}

// appendUTF8AsWCS decodes UTF-8, with CESU-8 pairs merged, into wide
// characters.
func appendUTF8AsWCS(dst *strbuf.WString, p []byte) error {
	if err := dst.Grow(len(p)); err != nil {
		return err
	}
	bad := 0
	for len(p) > 0 {
		r, n := ucodec.DecodeCESU8(p)
		if n == 0 {
			break
		}
		if n < 0 {
			n = -n
			bad++
		}
		p = p[n:]
		if err := dst.AppendElem(r); err != nil {
			return err
		}
	}
	if bad > 0 {
		return types.Errorf(types.ErrKindMalformedInput, "mstring: invalid UTF-8 replaced", nil)
	}
	return nil
}
