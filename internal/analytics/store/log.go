package store

import (
	"context"

	"github.com/serroba/link-tracker/internal/tracking"
	"go.uber.org/zap"
)

// Log is an analytics.Sink that writes each click to the logger and keeps nothing.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a new logging sink.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveClick(_ context.Context, event *tracking.ClickEvent) error {
	l.logger.Info("click received", event.LogFields()...)

	return nil
}
