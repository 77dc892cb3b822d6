package messaging

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// ZapLogger adapts a zap logger to watermill.LoggerAdapter.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger for use by watermill publishers and subscribers.
func NewZapLogger(logger *zap.Logger) watermill.LoggerAdapter {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

func (l *ZapLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

// Trace maps to debug; zap has no trace level.
func (l *ZapLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapLogger{logger: l.logger.With(toZapFields(fields)...)}
}

func toZapFields(fields watermill.LogFields) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+1)

	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}
