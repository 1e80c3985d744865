package logger

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// Watermill adapts a zap logger to watermill.LoggerAdapter.
type Watermill struct {
	log *zap.Logger
}

var _ watermill.LoggerAdapter = (*Watermill)(nil)

func NewWatermill(log *zap.Logger) *Watermill {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watermill{log: log}
}

func (w *Watermill) Error(msg string, err error, fields watermill.LogFields) {
	w.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (w *Watermill) Info(msg string, fields watermill.LogFields) {
	w.log.Info(msg, zapFields(fields)...)
}

func (w *Watermill) Debug(msg string, fields watermill.LogFields) {
	w.log.Debug(msg, zapFields(fields)...)
}

// Trace is mapped to Debug, zap has no lower level.
func (w *Watermill) Trace(msg string, fields watermill.LogFields) {
	w.log.Debug(msg, zapFields(fields)...)
}

func (w *Watermill) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &Watermill{log: w.log.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
