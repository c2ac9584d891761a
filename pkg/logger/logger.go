package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger so LOG_LEVEL applies application-wide
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// base is the root zap logger all channel loggers derive from
var base = zap.New(zapcore.NewCore(
	zapcore.NewConsoleEncoder(encoderConfig()),
	zapcore.Lock(os.Stdout),
	level,
))

// Logger is a printf-style wrapper around a zap sugared logger
type Logger struct {
	sugar     *zap.SugaredLogger
	channelID string
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	return cfg
}

// New creates a new logger with the given channel ID
func New(channelID string) *Logger {
	sugar := base.Sugar()
	if channelID != "" {
		sugar = sugar.With("channel", channelID)
	}
	return &Logger{
		sugar:     sugar,
		channelID: channelID,
	}
}

// Nop returns a logger that discards everything, for tests
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// SetLevel changes the application-wide log level.
// Unknown names fall back to info.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		l = zapcore.InfoLevel
	}
	level.SetLevel(l)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// Global logger instance for application-wide logging
var Global = New("")
