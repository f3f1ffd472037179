package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Structured JSON output, info level.
func New() (*zap.Logger, error) {
	return build(zapcore.InfoLevel)
}

// NewDebug is New at debug level, for the --verbose flag.
func NewDebug() (*zap.Logger, error) {
	return build(zapcore.DebugLevel)
}

func build(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
