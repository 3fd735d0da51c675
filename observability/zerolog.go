package observability

import (
	"time"

	"github.com/rs/zerolog"
)

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerolog adapts a zerolog.Logger to Logger. Field values keep their
// zerolog encoding where a typed method exists (errors, durations, ints).
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NewZerolog(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...Field) {
	emit(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...Field) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...Field) {
	emit(l.logger.Error(), msg, fields)
}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *zerologLogger) With(fields ...Field) Logger {
	ctx := l.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &zerologLogger{logger: ctx.Logger()}
}

func emit(event *zerolog.Event, msg string, fields []Field) {
	// Disabled levels return a nil event.
	if event == nil {
		return
	}

	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}

	event.Msg(msg)
}
