package logger

// NoopLogger discards all log output. Used in tests.
type NoopLogger struct{}

// NewNoop returns a logger that discards everything.
func NewNoop() Interface {
	return &NoopLogger{}
}

// Debug does nothing.
func (l *NoopLogger) Debug(msg string, fields ...any) {}

// Info does nothing.
func (l *NoopLogger) Info(msg string, fields ...any) {}

// Warn does nothing.
func (l *NoopLogger) Warn(msg string, fields ...any) {}

// Error does nothing.
func (l *NoopLogger) Error(msg string, fields ...any) {}

// Fatal does nothing.
func (l *NoopLogger) Fatal(msg string, fields ...any) {}

// With returns the receiver.
func (l *NoopLogger) With(fields ...any) Interface { return l }

// WithComponent returns the receiver.
func (l *NoopLogger) WithComponent(component string) Interface { return l }

// WithError returns the receiver.
func (l *NoopLogger) WithError(err error) Interface { return l }
