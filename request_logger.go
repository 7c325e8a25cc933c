package client

import "go.uber.org/zap"

// RequestLogger is the interface used by [Client] for logging HTTP requests
// and failures. It matches the logger interface of resty, so the same value
// also receives the transport's own log output. Supply an implementation via
// [WithRequestLogger].
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided to [New].
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}

// ZapLogger is a [RequestLogger] backed by a zap logger.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger wraps l. A nil l yields a logger that discards everything.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}

	return &ZapLogger{l: l.Named("merchant-api").Sugar()}
}

func (z *ZapLogger) Errorf(format string, v ...any) { z.l.Errorf(format, v...) }
func (z *ZapLogger) Warnf(format string, v ...any)  { z.l.Warnf(format, v...) }
func (z *ZapLogger) Debugf(format string, v ...any) { z.l.Debugf(format, v...) }
