package observability

// Field is one structured logging attribute.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logger the client writes transport events to.
// NewZerolog adapts a zerolog.Logger; any other library can be plugged in
// by implementing these five methods.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every subsequent entry.
	With(fields ...Field) Logger
}

type noopLogger struct{}

// NoopLogger returns a logger that discards everything. It is the default.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field)  {}
func (noopLogger) Warn(string, ...Field)  {}
func (noopLogger) Error(string, ...Field) {}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l noopLogger) With(...Field) Logger { return l }
