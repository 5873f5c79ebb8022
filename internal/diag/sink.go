package diag

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// Sink forwards validation messages to a logger. Messenger callbacks may
// arrive on driver threads, so the counters are atomic.
type Sink struct {
	log      *slog.Logger
	warnings atomic.Int64
	errors   atomic.Int64
}

var _ render.DiagnosticSink = (*Sink)(nil)

func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = NopLogger()
	}
	return &Sink{log: logger.With("source", "validation")}
}

func (s *Sink) Report(severity render.Severity, message string) {
	switch severity {
	case render.SeverityError:
		s.errors.Add(1)
	case render.SeverityWarning:
		s.warnings.Add(1)
	}
	s.log.Log(context.Background(), Level(severity), message)
}

// Counts returns how many warnings and errors have been reported.
func (s *Sink) Counts() (warnings, errors int64) {
	return s.warnings.Load(), s.errors.Load()
}

// Level maps a validation severity onto a slog level.
func Level(severity render.Severity) slog.Level {
	switch severity {
	case render.SeverityError:
		return slog.LevelError
	case render.SeverityWarning:
		return slog.LevelWarn
	case render.SeverityInfo:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
