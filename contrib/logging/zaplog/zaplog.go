// Package zaplog adapts go.uber.org/zap to the scyllacdc logger interface.
//
// Usage:
//
//	logger, _ := zap.NewProduction()
//	session, err := scyllacdc.Bootstrap(cfg,
//	    scyllacdc.WithLogger(zaplog.New(logger)),
//	)
package zaplog

import (
	"go.uber.org/zap"

	"github.com/arloliu/scyllacdc/types"
)

// Logger implements types.Logger on top of a zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Compile-time assertion that Logger implements types.Logger.
var _ types.Logger = (*Logger)(nil)

// New wraps a zap.Logger. A nil logger yields a no-op logger.
//
// Parameters:
//   - logger: The zap logger to write to
//
// Returns:
//   - *Logger: A logger implementing types.Logger
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// NewSugared wraps an existing zap.SugaredLogger as is.
func NewSugared(sugar *zap.SugaredLogger) *Logger {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}

	return &Logger{sugar: sugar}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Fatal logs at fatal level and exits the process.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	l.sugar.Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
