package sconv

import (
	"strings"

	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/pkg/strbuf"
)

// legacyUTF8 names the UTF-8 variant written by archivers that stored
// 16-bit wide characters as if they were Unicode.
const legacyUTF8 = "UTF-8-MADE_BY_LIBARCHIVE2"

// Flag records how a conversion was requested and what it has to do.
type Flag uint16

const (
	ToCharset    Flag = 1 << iota // session charset to a named charset
	FromCharset                   // named charset to the session charset
	BestEffort                    // never fail setup; substitute instead
	HostCodepage                  // the named charset maps to a known code page
	UTF16BE                       // one side is UTF-16BE
	LegacyUTF8                    // source is UTF-8-MADE_BY_LIBARCHIVE2
	CopyUTF8                      // UTF-8 to UTF-8
	NormalizeC                    // compose UTF-8 input (NFC)
	NormalizeD                    // decompose UTF-8 input (NFD)
	ToUTF8                        // destination is UTF-8
)

var flagNames = []string{
	"to-charset", "from-charset", "best-effort", "host-codepage", "utf16be",
	"legacy-utf8", "copy-utf8", "nfc", "nfd", "to-utf8",
}

func (f Flag) String() string {
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Strategy is the algorithm a Conv uses, fixed at construction.
type Strategy int

const (
	StrategyLegacy Strategy = iota
	StrategyIdentityUTF8
	StrategyUTF16BE
	StrategyHandle
	StrategyBestEffort
)

func (s Strategy) String() string {
	switch s {
	case StrategyLegacy:
		return "legacy"
	case StrategyIdentityUTF8:
		return "identity-utf8"
	case StrategyUTF16BE:
		return "utf16be"
	case StrategyHandle:
		return "handle"
	case StrategyBestEffort:
		return "best-effort"
	default:
		return "unknown"
	}
}

// Conv is one directed conversion owned by a Session.
type Conv struct {
	from, to     string
	fromCP, toCP uint32
	same         bool
	unit16       bool // source is UTF-16 of either byte order
	flags        Flag
	strategy     Strategy
	handle       Handle

	wide       WideConverter
	decomposer Decomposer

	scratch  strbuf.String  // NFC pre-pass
	mid      strbuf.String  // UTF-8 between decoder and encoder
	wscratch strbuf.WString // wide characters for UTF-16BE and validation
}

// newConv builds a conversion and selects its strategy.
func (s *Session) newConv(from, to string, flags Flag) (*Conv, error) {
	if from == legacyUTF8 {
		if s.opts.LegacyWideChars {
			flags |= LegacyUTF8
		} else {
			from = "UTF-8"
		}
	}

	c := &Conv{
		from:       from,
		to:         to,
		fromCP:     codepage.Unknown,
		toCP:       codepage.Unknown,
		wide:       s.wide,
		decomposer: s.decomposer,
	}
	c.scratch.SetLimit(s.opts.BufferLimit)
	c.mid.SetLimit(s.opts.BufferLimit)
	c.wscratch.SetLimit(s.opts.BufferLimit)

	if flags&LegacyUTF8 != 0 {
		c.flags = flags
		c.strategy = StrategyLegacy
		return c, nil
	}

	switch {
	case flags&ToCharset != 0:
		if to == "UTF-16BE" {
			flags |= UTF16BE
		}
		c.fromCP = s.cp
		if cp, ok := codepage.Lookup(to); ok {
			c.toCP = cp
			flags |= HostCodepage
		}
	case flags&FromCharset != 0:
		switch from {
		case "UTF-8":
			if s.opts.NormalizeD {
				flags |= NormalizeD
			} else {
				flags |= NormalizeC
			}
		case "UTF-16BE":
			flags |= UTF16BE
		}
		c.toCP = s.cp
		if cp, ok := codepage.Lookup(from); ok {
			c.fromCP = cp
			flags |= HostCodepage
		}
	}

	c.same = from == to || (c.fromCP != codepage.Unknown && c.fromCP == c.toCP)
	c.unit16 = isUTF16Name(from) || c.fromCP == codepage.UTF16LE || c.fromCP == codepage.UTF16BE
	if to == "UTF-8" || c.toCP == codepage.UTF8 {
		flags |= ToUTF8
	}
	if c.same && (from == "UTF-8" || c.fromCP == codepage.UTF8) {
		flags |= CopyUTF8
	}
	c.flags = flags

	if err := s.selectStrategy(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Session) selectStrategy(c *Conv) error {
	if c.flags&CopyUTF8 != 0 {
		c.strategy = StrategyIdentityUTF8
		return nil
	}
	if c.flags&UTF16BE != 0 && !s.opts.PreferHostHandle {
		c.strategy = StrategyUTF16BE
		return nil
	}

	h, err := s.backend.Open(c.from, c.to)
	if err == nil {
		c.handle = h
		c.strategy = StrategyHandle
		return nil
	}
	s.log.Debug("no conversion handle", "from", c.from, "to", c.to, "err", err)

	switch {
	case c.flags&UTF16BE != 0:
		c.strategy = StrategyUTF16BE
	case c.flags&BestEffort != 0 || c.same:
		c.strategy = StrategyBestEffort
	default:
		return unsupported(c.from, c.to)
	}
	return nil
}

// From returns the source charset name.
func (c *Conv) From() string { return c.from }

// To returns the destination charset name.
func (c *Conv) To() string { return c.to }

// CharsetName returns the charset on the non-session side.
func (c *Conv) CharsetName() string {
	if c.flags&ToCharset != 0 {
		return c.to
	}
	return c.from
}

// Flags returns the conversion's flags.
func (c *Conv) Flags() Flag { return c.flags }

// Strategy returns the selected strategy.
func (c *Conv) Strategy() Strategy { return c.strategy }

// Same reports whether both sides name the same encoding.
func (c *Conv) Same() bool { return c.same }

// Append converts src and appends the result to dst. The source ends at its
// first NUL byte; a UTF-16 source of either byte order ends at its first NUL
// unit and any odd trailing byte is ignored.
//
// A nil error means a clean conversion. A lossy error (types.IsLossy) means
// characters were replaced but dst holds the full result. Other errors are
// hard failures.
func (c *Conv) Append(dst *strbuf.String, src []byte) error {
	if c.unit16 {
		src = trimUTF16(src)
	} else {
		src = src[:strbuf.TermLen(src, len(src))]
	}

	switch c.strategy {
	case StrategyLegacy:
		return c.appendLegacy(dst, src)
	case StrategyIdentityUTF8:
		return c.appendUTF8(dst, src)
	case StrategyUTF16BE:
		if c.fromUTF16() {
			return c.appendFromUTF16BE(dst, src)
		}
		return c.appendToUTF16BE(dst, src)
	case StrategyHandle:
		return c.appendHandle(dst, src)
	default:
		return c.appendBestEffort(dst, src)
	}
}

// Copy replaces dst with the conversion of src.
func (c *Conv) Copy(dst *strbuf.String, src []byte) error {
	dst.Empty()
	return c.Append(dst, src)
}

// Close releases the backend handle and the scratch buffers.
func (c *Conv) Close() error {
	var err error
	if c.handle != nil {
		err = c.handle.Close()
		c.handle = nil
	}
	c.scratch.Free()
	c.mid.Free()
	c.wscratch.Free()
	return err
}

func (c *Conv) fromUTF16() bool {
	return c.from == "UTF-16BE" && c.flags&FromCharset != 0
}

func isUTF16Name(name string) bool {
	switch strings.ToUpper(name) {
	case "UTF-16", "UTF-16BE", "UTF-16LE", "UTF16", "UTF16BE", "UTF16LE":
		return true
	}
	return false
}

// trimUTF16 drops an odd trailing byte and cuts src at its first all-zero
// 16-bit unit.
func trimUTF16(src []byte) []byte {
	src = src[:len(src)&^1]
	for i := 0; i < len(src); i += 2 {
		if src[i] == 0 && src[i+1] == 0 {
			return src[:i]
		}
	}
	return src
}

// CopyWithConversion replaces dst with src converted by c. A nil c copies
// src verbatim up to its first NUL byte.
func CopyWithConversion(dst *strbuf.String, src []byte, c *Conv) error {
	if c == nil {
		return dst.NCopy(src, len(src))
	}
	return c.Copy(dst, src)
}

// AppendWithConversion is CopyWithConversion without emptying dst first.
func AppendWithConversion(dst *strbuf.String, src []byte, c *Conv) error {
	if c == nil {
		return dst.NCat(src, len(src))
	}
	return c.Append(dst, src)
}
