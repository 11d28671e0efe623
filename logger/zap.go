// Package logger adapts zap to the frigocheck Logger interface.
package logger

import (
	"go.uber.org/zap"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

// ZapLogger wraps a zap logger behind the frigocheck Logger interface.
type ZapLogger struct {
	log *zap.SugaredLogger
}

var _ frigocheck.Logger = (*ZapLogger)(nil)

// NewZap wraps an existing zap logger.
func NewZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{log: l.Sugar()}
}

// NewDevelopment returns a development-configured zap adapter.
func NewDevelopment() (*ZapLogger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return NewZap(l), nil
}

func (z *ZapLogger) Debug(msg string, args ...any) {
	z.log.Debugw(msg, args...)
}

func (z *ZapLogger) Info(msg string, args ...any) {
	z.log.Infow(msg, args...)
}

func (z *ZapLogger) Warn(msg string, args ...any) {
	z.log.Warnw(msg, args...)
}

func (z *ZapLogger) Error(msg string, args ...any) {
	z.log.Errorw(msg, args...)
}

// Sync flushes buffered log entries. Call on shutdown.
func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}
