package taskwheel

import "go.uber.org/zap"

// Logger is the structured logging interface the scheduler logs through.
// Its shape (message plus variadic key-value pairs) matches the logging
// convention used throughout this codebase's ancestry, so any slog/zap/
// logrus adapter a caller already has satisfies it without modification.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// nopLogger discards everything. Used as the default so the rest of the
// package can call s.logger.Info(...) unconditionally instead of guarding
// every call site with a nil check.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}

// zapLogger adapts *zap.SugaredLogger to Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger builds the default Logger implementation on top of zap's
// production configuration.
func NewZapLogger() (Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &zapLogger{s: base.Sugar()}, nil
}

// NewZapLoggerFrom adapts an already-constructed *zap.Logger, for callers
// who manage their own zap configuration.
func NewZapLoggerFrom(base *zap.Logger) Logger {
	return &zapLogger{s: base.Sugar()}
}

func (l *zapLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *zapLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *zapLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }
func (l *zapLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
