package sconv

import (
	"errors"
	"io"
	"log/slog"

	"github.com/joshuapare/archstr/internal/codepage"
	"github.com/joshuapare/archstr/internal/unorm"
	"github.com/joshuapare/archstr/pkg/types"
)

// Session owns the conversions used while reading or writing one archive.
type Session struct {
	opts Options

	charset string
	cp      uint32
	oemcp   uint32

	backend    Backend
	wide       WideConverter
	decomposer Decomposer
	reporter   Reporter
	log        *slog.Logger

	convs   []*Conv
	keys    []convKey
	lastErr error
}

type convKey struct {
	from, to string
}

// NewSession creates a session. Zero-value options detect the locale
// charset and convert through x/text.
func NewSession(opts Options) *Session {
	s := &Session{opts: opts}

	s.log = opts.Logger
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.Charset == "" {
		loc := codepage.Current()
		s.charset, s.cp, s.oemcp = loc.Charset, loc.ACP, loc.OEMCP
	} else {
		s.charset = opts.Charset
		s.cp = lookupCP(opts.Charset)
		s.oemcp = s.cp
	}
	if opts.OEMCharset != "" {
		s.oemcp = lookupCP(opts.OEMCharset)
	}

	s.backend = opts.Backend
	if s.backend == nil {
		s.backend = XTextBackend{}
	}
	s.decomposer = opts.Decomposer
	if s.decomposer == nil {
		s.decomposer = unorm.HFSDecomposer{}
	}
	s.reporter = opts.Reporter
	if s.reporter == nil {
		s.reporter = SlogReporter{Logger: s.log}
	}
	s.wide = opts.Wide
	if s.wide == nil {
		w, err := NewWideConverter(s.charset)
		if err != nil {
			s.log.Debug("locale charset not supported, using ASCII", "charset", s.charset, "err", err)
			w = asciiFallback(s.charset)
		}
		s.wide = w
	}
	return s
}

func lookupCP(name string) uint32 {
	cp, ok := codepage.Lookup(name)
	if !ok {
		return codepage.Unknown
	}
	return cp
}

// CurrentCharset returns the session's locale charset.
func (s *Session) CurrentCharset() string { return s.charset }

// Wide returns the session's wide-character converter.
func (s *Session) Wide() WideConverter { return s.wide }

// ConversionTo returns the conversion from the session charset to charset.
// Without bestEffort the call fails with types.ErrEncodingUnsupported when
// no real conversion exists.
func (s *Session) ConversionTo(charset string, bestEffort bool) (*Conv, error) {
	flags := ToCharset
	if bestEffort {
		flags |= BestEffort
	}
	return s.get(s.charset, charset, flags)
}

// ConversionFrom returns the conversion from charset to the session charset.
func (s *Session) ConversionFrom(charset string, bestEffort bool) (*Conv, error) {
	flags := FromCharset
	if bestEffort {
		flags |= BestEffort
	}
	return s.get(charset, s.charset, flags)
}

// DefaultConversionForRead returns the conversion from the OEM code page to
// the session charset, for archive names written by tools that use the OEM
// code page. It returns nil, nil when the two code pages agree.
func (s *Session) DefaultConversionForRead() (*Conv, error) {
	if !s.needsOEM() {
		return nil, nil
	}
	return s.get(codepage.Name(s.oemcp), s.charset, FromCharset)
}

// DefaultConversionForWrite is the reverse of DefaultConversionForRead.
func (s *Session) DefaultConversionForWrite() (*Conv, error) {
	if !s.needsOEM() {
		return nil, nil
	}
	return s.get(s.charset, codepage.Name(s.oemcp), ToCharset)
}

func (s *Session) needsOEM() bool {
	loc := codepage.Locale{Charset: s.charset, ACP: s.cp, OEMCP: s.oemcp}
	return loc.NeedsOEMConversion()
}

// Lookup returns the cached conversion for exactly (from, to), or nil.
func (s *Session) Lookup(from, to string) *Conv {
	for i, k := range s.keys {
		if k.from == from && k.to == to {
			return s.convs[i]
		}
	}
	return nil
}

// Len returns the number of cached conversions.
func (s *Session) Len() int { return len(s.convs) }

// LastError returns the last setup failure reported by the session.
func (s *Session) LastError() error { return s.lastErr }

func (s *Session) get(from, to string, flags Flag) (*Conv, error) {
	if c := s.Lookup(from, to); c != nil {
		return c, nil
	}
	c, err := s.newConv(from, to, flags)
	if err != nil {
		s.report(err)
		return nil, err
	}
	s.log.Debug("conversion created",
		"from", from, "to", to, "strategy", c.strategy.String(), "flags", c.flags.String())
	s.convs = append(s.convs, c)
	s.keys = append(s.keys, convKey{from: from, to: to})
	return c, nil
}

func (s *Session) report(err error) {
	s.lastErr = err
	kind, ok := types.KindOf(err)
	if !ok {
		kind = types.ErrKindEncodingUnsupported
	}
	s.reporter.SetError(kind, err.Error())
}

// Close releases every cached conversion. The session stays usable and
// further calls to Close are no-ops until new conversions are created.
func (s *Session) Close() error {
	var errs []error
	for _, c := range s.convs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.convs = nil
	s.keys = nil
	return errors.Join(errs...)
}
