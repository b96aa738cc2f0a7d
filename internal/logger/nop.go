package logger

// NopLogger discards all log output. Use in tests or when logging is
// disabled.
type NopLogger struct{}

// NewNop creates a new no-op logger instance.
func NewNop() Logger {
	return &NopLogger{}
}

func (l *NopLogger) Debug(string, ...Field) {}
func (l *NopLogger) Info(string, ...Field)  {}
func (l *NopLogger) Warn(string, ...Field)  {}
func (l *NopLogger) Error(string, ...Field) {}

// Fatal does nothing and, unlike a real logger, does not exit.
func (l *NopLogger) Fatal(string, ...Field) {}

func (l *NopLogger) With(...Field) Logger { return l }

func (l *NopLogger) Sync() error { return nil }
