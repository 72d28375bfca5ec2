package sconv

import (
	"log/slog"

	"go.uber.org/zap"

	"github.com/joshuapare/archstr/pkg/types"
)

// Reporter receives errors raised while setting up conversions, in the
// manner of an archive handle's "last error" slot.
type Reporter interface {
	SetError(kind types.ErrKind, msg string)
}

// SlogReporter logs reported errors at Warn. A nil Logger discards them.
type SlogReporter struct {
	Logger *slog.Logger
}

func (r SlogReporter) SetError(kind types.ErrKind, msg string) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn(msg, "kind", kind.String())
}

// ZapReporter logs reported errors at Warn through zap. A nil Logger
// discards them.
type ZapReporter struct {
	Logger *zap.Logger
}

func (r ZapReporter) SetError(kind types.ErrKind, msg string) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn(msg, zap.Stringer("kind", kind))
}
