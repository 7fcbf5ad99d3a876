package types

// Logger is the structured logger used by scyllacdc.
//
// Messages are followed by alternating key/value pairs. Implementations
// must be safe for concurrent use. See contrib/logging/zaplog for a zap
// based implementation.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Fatal(msg string, keysAndValues ...any)
}
